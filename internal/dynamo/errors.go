package dynamo

import (
	"errors"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/aws/smithy-go"
	"go.uber.org/zap"

	"github.com/imrishuroy/stripe-graphql-api/internal/apperr"
)

// IsConditionFailed reports whether err is a failed ConditionExpression.
func IsConditionFailed(err error) bool {
	var ccf *types.ConditionalCheckFailedException
	return errors.As(err, &ccf)
}

// ErrorCode returns the service error code carried by err, or "".
func ErrorCode(err error) string {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		return apiErr.ErrorCode()
	}
	return ""
}

// Failure logs err and converts it into an upstream error whose message is
// the root cause, or fallback when err carries none.
func Failure(logger *zap.Logger, fallback string, err error) error {
	fields := []zap.Field{zap.Error(err)}
	if code := ErrorCode(err); code != "" {
		fields = append(fields, zap.String("code", code))
	}
	logger.Error(fallback, fields...)
	return apperr.Upstream(fallback, err)
}
