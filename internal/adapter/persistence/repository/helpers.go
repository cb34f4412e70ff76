package repository

import (
	"errors"
	"os"

	"github.com/TenaciousFoxy/payment-history-service/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// classifyDynamoError maps SDK failures onto the structured storage error
// kinds the use case retries on. Conditional-check failures mean another
// writer holds the transaction-id marker, which is a conflict, not a fault.
func classifyDynamoError(op string, err error) *interfaces.StorageError {
	var txnCanceled *types.TransactionCanceledException
	if errors.As(err, &txnCanceled) {
		for _, reason := range txnCanceled.CancellationReasons {
			if reason.Code != nil && *reason.Code == "ConditionalCheckFailed" {
				return interfaces.NewStorageError(interfaces.StorageConflict, op, err)
			}
		}
		return interfaces.NewStorageError(interfaces.StorageTransient, op, err)
	}

	var condFailed *types.ConditionalCheckFailedException
	if errors.As(err, &condFailed) {
		return interfaces.NewStorageError(interfaces.StorageConflict, op, err)
	}

	var throughput *types.ProvisionedThroughputExceededException
	var requestLimit *types.RequestLimitExceeded
	var internal *types.InternalServerError
	var limit *types.LimitExceededException
	if errors.As(err, &throughput) || errors.As(err, &requestLimit) ||
		errors.As(err, &internal) || errors.As(err, &limit) {
		return interfaces.NewStorageError(interfaces.StorageTransient, op, err)
	}

	return interfaces.NewStorageError(interfaces.StorageFatal, op, err)
}
