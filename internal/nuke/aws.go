// Copyright (c) 2026 Steve Taranto <staranto@gmail.com>.
// SPDX-License-Identifier: Apache-2.0

package nuke

import (
	"context"
	"fmt"

	awsv2 "github.com/aws/aws-sdk-go-v2/aws"
	ec2v2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	ec2types "github.com/aws/aws-sdk-go-v2/service/ec2/types"
	rdsv2 "github.com/aws/aws-sdk-go-v2/service/rds"
)

// EC2API is the subset of the EC2 client the pass depends on.
type EC2API interface {
	DescribeInstances(ctx context.Context, params *ec2v2.DescribeInstancesInput, optFns ...func(*ec2v2.Options)) (*ec2v2.DescribeInstancesOutput, error)
	StopInstances(ctx context.Context, params *ec2v2.StopInstancesInput, optFns ...func(*ec2v2.Options)) (*ec2v2.StopInstancesOutput, error)
	TerminateInstances(ctx context.Context, params *ec2v2.TerminateInstancesInput, optFns ...func(*ec2v2.Options)) (*ec2v2.TerminateInstancesOutput, error)
	DescribeNatGateways(ctx context.Context, params *ec2v2.DescribeNatGatewaysInput, optFns ...func(*ec2v2.Options)) (*ec2v2.DescribeNatGatewaysOutput, error)
	DeleteNatGateway(ctx context.Context, params *ec2v2.DeleteNatGatewayInput, optFns ...func(*ec2v2.Options)) (*ec2v2.DeleteNatGatewayOutput, error)
}

// RDSAPI is the subset of the RDS client the pass depends on.
type RDSAPI interface {
	DescribeDBInstances(ctx context.Context, params *rdsv2.DescribeDBInstancesInput, optFns ...func(*rdsv2.Options)) (*rdsv2.DescribeDBInstancesOutput, error)
	StopDBInstance(ctx context.Context, params *rdsv2.StopDBInstanceInput, optFns ...func(*rdsv2.Options)) (*rdsv2.StopDBInstanceOutput, error)
	DeleteDBInstance(ctx context.Context, params *rdsv2.DeleteDBInstanceInput, optFns ...func(*rdsv2.Options)) (*rdsv2.DeleteDBInstanceOutput, error)
}

// ec2Tags converts SDK tag lists to a plain map.
func ec2Tags(tags []ec2types.Tag) map[string]string {
	m := make(map[string]string, len(tags))
	for _, t := range tags {
		if t.Key != nil {
			m[*t.Key] = awsv2.ToString(t.Value)
		}
	}
	return m
}

// InstanceSource enumerates running and pending EC2 instances.
type InstanceSource struct {
	API EC2API
}

func (s *InstanceSource) Name() string { return "ec2 instances" }

func (s *InstanceSource) List(ctx context.Context) ([]Candidate, error) {
	out, err := s.API.DescribeInstances(ctx, &ec2v2.DescribeInstancesInput{
		Filters: []ec2types.Filter{{
			Name:   awsv2.String("instance-state-name"),
			Values: []string{"running", "pending"},
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("describe instances: %w", err)
	}

	var candidates []Candidate
	for _, reservation := range out.Reservations {
		for _, inst := range reservation.Instances {
			tags := ec2Tags(inst.Tags)
			state := ""
			if inst.State != nil {
				state = string(inst.State.Name)
			}
			candidates = append(candidates, Candidate{
				ID:    awsv2.ToString(inst.InstanceId),
				Name:  tags["Name"],
				Kind:  KindEC2Instance,
				State: state,
				Tags:  tags,
			})
		}
	}
	return candidates, nil
}

// NATGatewaySource enumerates available and pending NAT gateways.
type NATGatewaySource struct {
	API EC2API
}

func (s *NATGatewaySource) Name() string { return "nat gateways" }

func (s *NATGatewaySource) List(ctx context.Context) ([]Candidate, error) {
	out, err := s.API.DescribeNatGateways(ctx, &ec2v2.DescribeNatGatewaysInput{
		Filter: []ec2types.Filter{{
			Name:   awsv2.String("state"),
			Values: []string{"available", "pending"},
		}},
	})
	if err != nil {
		return nil, fmt.Errorf("describe nat gateways: %w", err)
	}

	var candidates []Candidate
	for _, nat := range out.NatGateways {
		tags := ec2Tags(nat.Tags)
		candidates = append(candidates, Candidate{
			ID:    awsv2.ToString(nat.NatGatewayId),
			Name:  tags["Name"],
			Kind:  KindNATGateway,
			State: string(nat.State),
			Tags:  tags,
		})
	}
	return candidates, nil
}

// DBInstanceSource enumerates available RDS instances.
type DBInstanceSource struct {
	API RDSAPI
}

func (s *DBInstanceSource) Name() string { return "rds instances" }

func (s *DBInstanceSource) List(ctx context.Context) ([]Candidate, error) {
	out, err := s.API.DescribeDBInstances(ctx, &rdsv2.DescribeDBInstancesInput{})
	if err != nil {
		return nil, fmt.Errorf("describe db instances: %w", err)
	}

	var candidates []Candidate
	for _, db := range out.DBInstances {
		// Some RDS states (stopped, starting, backing-up) can't be acted on.
		if awsv2.ToString(db.DBInstanceStatus) != "available" {
			continue
		}
		tags := make(map[string]string, len(db.TagList))
		for _, t := range db.TagList {
			if t.Key != nil {
				tags[*t.Key] = awsv2.ToString(t.Value)
			}
		}
		candidates = append(candidates, Candidate{
			ID:    awsv2.ToString(db.DBInstanceIdentifier),
			Kind:  KindRDSInstance,
			State: awsv2.ToString(db.DBInstanceStatus),
			Tags:  tags,
		})
	}
	return candidates, nil
}

// EC2Actuator stops or terminates EC2 instances.
type EC2Actuator struct {
	API EC2API
}

func (a *EC2Actuator) Stop(ctx context.Context, c Candidate) error {
	_, err := a.API.StopInstances(ctx, &ec2v2.StopInstancesInput{
		InstanceIds: []string{c.ID},
	})
	return err
}

func (a *EC2Actuator) Terminate(ctx context.Context, c Candidate) error {
	_, err := a.API.TerminateInstances(ctx, &ec2v2.TerminateInstancesInput{
		InstanceIds: []string{c.ID},
	})
	return err
}

// NATGatewayActuator deletes NAT gateways. They have no stopped state.
type NATGatewayActuator struct {
	API EC2API
}

func (a *NATGatewayActuator) Stop(ctx context.Context, c Candidate) error {
	return fmt.Errorf("nat gateway %s cannot be stopped", c.ID)
}

func (a *NATGatewayActuator) Terminate(ctx context.Context, c Candidate) error {
	_, err := a.API.DeleteNatGateway(ctx, &ec2v2.DeleteNatGatewayInput{
		NatGatewayId: awsv2.String(c.ID),
	})
	return err
}

// RDSActuator stops or deletes RDS instances.
type RDSActuator struct {
	API RDSAPI
}

func (a *RDSActuator) Stop(ctx context.Context, c Candidate) error {
	_, err := a.API.StopDBInstance(ctx, &rdsv2.StopDBInstanceInput{
		DBInstanceIdentifier: awsv2.String(c.ID),
	})
	return err
}

func (a *RDSActuator) Terminate(ctx context.Context, c Candidate) error {
	_, err := a.API.DeleteDBInstance(ctx, &rdsv2.DeleteDBInstanceInput{
		DBInstanceIdentifier: awsv2.String(c.ID),
		SkipFinalSnapshot:    awsv2.Bool(true),
	})
	return err
}

// NewAWSPass wires the standard sources and actuators for real AWS clients.
func NewAWSPass(ec2 EC2API, rds RDSAPI, dryRun bool) *Pass {
	return &Pass{
		Sources: []Source{
			&InstanceSource{API: ec2},
			&NATGatewaySource{API: ec2},
			&DBInstanceSource{API: rds},
		},
		Actuators: map[Kind]Actuator{
			KindEC2Instance: &EC2Actuator{API: ec2},
			KindNATGateway:  &NATGatewayActuator{API: ec2},
			KindRDSInstance: &RDSActuator{API: rds},
		},
		DryRun: dryRun,
	}
}
