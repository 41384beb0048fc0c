package aws

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	cwtypes "github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"
)

const (
	MetricInvocations = "ResolverInvocations"
	MetricErrors      = "ResolverErrors"
)

// Metrics publishes resolver counters to CloudWatch under a single namespace.
type Metrics struct {
	CloudWatch CloudWatchAPI
	Namespace  string
}

// NewMetrics returns a Metrics bound to namespace.
func NewMetrics(cw CloudWatchAPI, namespace string) *Metrics {
	return &Metrics{CloudWatch: cw, Namespace: namespace}
}

// RecordResolver counts one invocation of typeName.fieldName, plus an error
// datum when failed is set.
func (m *Metrics) RecordResolver(ctx context.Context, typeName, fieldName string, failed bool) error {
	dims := []cwtypes.Dimension{
		{Name: awsString("TypeName"), Value: awsString(typeName)},
		{Name: awsString("FieldName"), Value: awsString(fieldName)},
	}
	data := []cwtypes.MetricDatum{count(MetricInvocations, dims)}
	if failed {
		data = append(data, count(MetricErrors, dims))
	}

	_, err := m.CloudWatch.PutMetricData(ctx, &cloudwatch.PutMetricDataInput{
		Namespace:  awsString(m.Namespace),
		MetricData: data,
	})
	if err != nil {
		return fmt.Errorf("put metric data: %w", err)
	}
	return nil
}

func count(name string, dims []cwtypes.Dimension) cwtypes.MetricDatum {
	one := 1.0
	return cwtypes.MetricDatum{
		MetricName: awsString(name),
		Dimensions: dims,
		Unit:       cwtypes.StandardUnitCount,
		Value:      &one,
	}
}
