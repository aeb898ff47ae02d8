// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package command

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/cloudchore/cloudchore/internal/meta"
)

const bashCompletionScript = `# bash completion for cloudchore
# Fallback if bash-completion is not installed
if ! declare -F _get_comp_words_by_ref >/dev/null 2>&1; then
  _get_comp_words_by_ref() {
    cur=${COMP_WORDS[COMP_CWORD]}
    prev=${COMP_WORDS[COMP_CWORD-1]}
  }
fi

_cloudchore()
{
    local cur prev cmd
    COMPREPLY=()
    _get_comp_words_by_ref -n : cur prev

    if [[ ${COMP_CWORD} -eq 1 ]]; then
        COMPREPLY=( $(compgen -W "check nuke resize serve completion --help --version" -- "$cur") )
        return 0
    fi

    cmd=${COMP_WORDS[1]}
    local common="--color -c --filter -f --output -o --padding --sort -s --titles -t"

    case "$cmd" in
        check)
            local opts="$common --alert-threshold --auto-nuke --critical-threshold --daily-summary --dry-run --event --profile --region --server --token --topic"
            ;;
        nuke)
            local opts="$common --dry-run --profile --region --server --token --topic"
            ;;
        resize)
            local opts="--default-height --default-width --height --out -O --width -w"
            ;;
        serve)
            local opts="--addr -a --height --profile --region --resized-bucket --upload-bucket --width"
            ;;
        completion)
            local opts="bash zsh"
            COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
            return 0
            ;;
        *)
            local opts="$common"
            ;;
    esac

    if [[ "$prev" == "--output" || "$prev" == "-o" ]]; then
        COMPREPLY=( $(compgen -W "text json raw yaml" -- "$cur") )
        return 0
    fi

    if [[ "$cmd" == "resize" && "$cur" != -* ]]; then
        # The resize positional is an image file.
        COMPREPLY=( $(compgen -o default -- "$cur") )
        return 0
    fi

    COMPREPLY=( $(compgen -W "$opts" -- "$cur") )
    return 0
}

complete -F _cloudchore cloudchore
`

const zshCompletionScript = `#compdef cloudchore

_cloudchore() {
  local -a common
  common=(
    '(-c --color)'{-c,--color}'[enable colored text output]'
    '(-f --filter)'{-f,--filter}'[substring filter]'
    '(-o --output)'{-o,--output}'[output format]:format:(text json raw yaml)'
    '--padding[extra table padding]'
    '(-s --sort)'{-s,--sort}'[sort attributes]'
    '(-t --titles)'{-t,--titles}'[show titles]'
  )

  if (( CURRENT == 2 )); then
    _values 'command' check nuke resize serve completion
    return
  fi

  case "$words[2]" in
    check)
      _arguments -C \
        $common \
        '--alert-threshold[alert threshold in USD]' \
        '--auto-nuke[run the nuke pass when spend is critical]' \
        '--critical-threshold[critical threshold in USD]' \
        '--daily-summary[send a summary even under threshold]' \
        '--dry-run[report without acting]' \
        '--event[budget push event JSON file]:file:_files' \
        '--profile[AWS profile]' \
        '--region[AWS region]' \
        '--server[ntfy server URL]' \
        '--token[ntfy bearer token]' \
        '--topic[ntfy topic]'
      ;;
    nuke)
      _arguments -C \
        $common \
        '--dry-run[report without acting]' \
        '--profile[AWS profile]' \
        '--region[AWS region]' \
        '--server[ntfy server URL]' \
        '--token[ntfy bearer token]' \
        '--topic[ntfy topic]'
      ;;
    resize)
      _arguments -C \
        '--default-height[bounding height]' \
        '--default-width[bounding width]' \
        '--height[target height]' \
        '(-O --out)'{-O,--out}'[output file]:file:_files' \
        '(-w --width)'{-w,--width}'[target width]' \
        '::file:_files'
      ;;
    serve)
      _arguments -C \
        '(-a --addr)'{-a,--addr}'[listen address]' \
        '--height[default bounding height]' \
        '--profile[AWS profile]' \
        '--region[AWS region]' \
        '--resized-bucket[output bucket]' \
        '--upload-bucket[source bucket]' \
        '--width[default bounding width]'
      ;;
    completion)
      _arguments '1: :((bash zsh))'
      ;;
    *)
      _arguments -C $common
      ;;
  esac
}

# If this file is sourced directly (not autoloaded via fpath), ensure compsys
# is initialized and register the completion
if ! typeset -f compdef >/dev/null 2>&1; then
  autoload -Uz compinit && compinit -i
fi
compdef _cloudchore cloudchore
`

func completionCommandAction(ctx context.Context, cmd *cli.Command) error {
	shell := ""
	if args := cmd.Args().Slice(); len(args) > 0 {
		shell = args[0]
	}
	switch shell {
	case "bash":
		fmt.Fprint(os.Stdout, bashCompletionScript)
	case "zsh":
		fmt.Fprint(os.Stdout, zshCompletionScript)
	default:
		// Try to detect from SHELL or print help
		sh := os.Getenv("SHELL")
		switch {
		case strings.HasSuffix(sh, "zsh"):
			fmt.Fprint(os.Stdout, zshCompletionScript)
		case strings.HasSuffix(sh, "bash"):
			fmt.Fprint(os.Stdout, bashCompletionScript)
		default:
			fmt.Fprintln(os.Stderr, "usage: cloudchore completion [bash|zsh]")
			return nil
		}
	}
	return nil
}

func completionCommandBuilder(meta meta.Meta) *cli.Command {
	return &cli.Command{
		Name:      "completion",
		Usage:     "generate shell completion script",
		UsageText: "cloudchore completion [bash|zsh]",
		Metadata: map[string]any{
			"meta": meta,
		},
		Action: completionCommandAction,
	}
}
