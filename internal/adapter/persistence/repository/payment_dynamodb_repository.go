package repository

import (
	"context"
	"sort"
	"time"

	"github.com/TenaciousFoxy/payment-history-service/internal/domain/entities"
	"github.com/TenaciousFoxy/payment-history-service/internal/usecase/interfaces"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	defaultPaymentsTableName = "payments"
	paymentsStatusIndex      = "status-index"
	paymentsPayerEmailIndex  = "payer_email-index"

	// txnLockPrefix keys the marker items that make transaction ids unique.
	// One marker per stored payment lives in the same table under
	// "TXN#<transaction_id>"; both are written in one transaction so a racing
	// duplicate fails the conditional check.
	txnLockPrefix = "TXN#"
)

type paymentItem struct {
	ID               string `dynamodbav:"id"`
	Amount           string `dynamodbav:"amount"`
	Currency         string `dynamodbav:"currency"`
	Description      string `dynamodbav:"description,omitempty"`
	Status           string `dynamodbav:"status"`
	PayerName        string `dynamodbav:"payer_name,omitempty"`
	PayerEmail       string `dynamodbav:"payer_email,omitempty"`
	RecipientName    string `dynamodbav:"recipient_name,omitempty"`
	RecipientAccount string `dynamodbav:"recipient_account,omitempty"`
	TransactionID    string `dynamodbav:"transaction_id"`
	CreatedAt        string `dynamodbav:"created_at"`
	UpdatedAt        string `dynamodbav:"updated_at"`
}

// PaymentDynamoRepository persists Payment entities in DynamoDB.
//
// Table requirements:
//   - PK: id (string)
//   - GSI: status-index (PK: status)
//   - GSI: payer_email-index (PK: payer_email)
//
// Every error leaving this repository is an interfaces.StorageError carrying
// its retry classification, so callers never see SDK types.

type PaymentDynamoRepository struct {
	ddb       *dynamodb.Client
	tableName string
}

var _ interfaces.IPaymentRepository = (*PaymentDynamoRepository)(nil)

func NewPaymentDynamoRepository(ddb *dynamodb.Client) *PaymentDynamoRepository {
	return &PaymentDynamoRepository{
		ddb:       ddb,
		tableName: getenvDefault("PAYMENTS_TABLE", defaultPaymentsTableName),
	}
}

// Save inserts p when it is marked new and updates it otherwise. The insert
// runs as a transaction that also claims the transaction-id marker item; if
// another writer already holds the marker the transaction cancels and Save
// returns a conflict-kind StorageError.
func (r *PaymentDynamoRepository) Save(ctx context.Context, p entities.Payment) (entities.Payment, error) {
	av, err := attributevalue.MarshalMap(toPaymentItem(p))
	if err != nil {
		return entities.Payment{}, interfaces.NewStorageError(interfaces.StorageFatal, "save", err)
	}

	if !p.IsNew {
		_, err = r.ddb.PutItem(ctx, &dynamodb.PutItemInput{
			TableName: aws.String(r.tableName),
			Item:      av,
		})
		if err != nil {
			return entities.Payment{}, classifyDynamoError("save", err)
		}
		return p, nil
	}

	_, err = r.ddb.TransactWriteItems(ctx, &dynamodb.TransactWriteItemsInput{
		TransactItems: []types.TransactWriteItem{
			{
				Put: &types.Put{
					TableName:           aws.String(r.tableName),
					Item:                av,
					ConditionExpression: aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{
						"#id": "id",
					},
				},
			},
			{
				Put: &types.Put{
					TableName: aws.String(r.tableName),
					Item: map[string]types.AttributeValue{
						"id": &types.AttributeValueMemberS{Value: txnLockPrefix + p.TransactionID},
					},
					ConditionExpression: aws.String("attribute_not_exists(#id)"),
					ExpressionAttributeNames: map[string]string{
						"#id": "id",
					},
				},
			},
		},
	})
	if err != nil {
		return entities.Payment{}, classifyDynamoError("save", err)
	}
	return p, nil
}

func (r *PaymentDynamoRepository) FindByID(ctx context.Context, id string) (entities.Payment, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: id},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return entities.Payment{}, classifyDynamoError("find-by-id", err)
	}
	if len(out.Item) == 0 {
		return entities.Payment{}, nil
	}

	var it paymentItem
	if err := attributevalue.UnmarshalMap(out.Item, &it); err != nil {
		return entities.Payment{}, interfaces.NewStorageError(interfaces.StorageFatal, "find-by-id", err)
	}
	return fromPaymentItem(it), nil
}

func (r *PaymentDynamoRepository) FindByStatus(ctx context.Context, status entities.PaymentStatus) ([]entities.Payment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsStatusIndex),
		KeyConditionExpression: aws.String("#status = :status"),
		ExpressionAttributeNames: map[string]string{
			"#status": "status",
		},
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":status": &types.AttributeValueMemberS{Value: string(status)},
		},
	})
	if err != nil {
		return nil, classifyDynamoError("find-by-status", err)
	}
	return unmarshalPayments("find-by-status", out.Items)
}

func (r *PaymentDynamoRepository) FindByPayerEmail(ctx context.Context, email string) ([]entities.Payment, error) {
	out, err := r.ddb.Query(ctx, &dynamodb.QueryInput{
		TableName:              aws.String(r.tableName),
		IndexName:              aws.String(paymentsPayerEmailIndex),
		KeyConditionExpression: aws.String("payer_email = :email"),
		ExpressionAttributeValues: map[string]types.AttributeValue{
			":email": &types.AttributeValueMemberS{Value: email},
		},
	})
	if err != nil {
		return nil, classifyDynamoError("find-by-payer-email", err)
	}
	return unmarshalPayments("find-by-payer-email", out.Items)
}

// FindLatest scans the table and orders in memory. The table stays small in
// this service; ordering by created_at without a dedicated index is a
// deliberate trade-off inherited from the single-table storage model.
func (r *PaymentDynamoRepository) FindLatest(ctx context.Context, limit int) ([]entities.Payment, error) {
	payments, err := r.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	sort.Slice(payments, func(i, j int) bool {
		return payments[i].CreatedAt.After(payments[j].CreatedAt)
	})
	if len(payments) > limit {
		payments = payments[:limit]
	}
	return payments, nil
}

func (r *PaymentDynamoRepository) FindAll(ctx context.Context) ([]entities.Payment, error) {
	var payments []entities.Payment
	var startKey map[string]types.AttributeValue
	for {
		out, err := r.ddb.Scan(ctx, &dynamodb.ScanInput{
			TableName:        aws.String(r.tableName),
			FilterExpression: aws.String("NOT begins_with(#id, :lock)"),
			ExpressionAttributeNames: map[string]string{
				"#id": "id",
			},
			ExpressionAttributeValues: map[string]types.AttributeValue{
				":lock": &types.AttributeValueMemberS{Value: txnLockPrefix},
			},
			ExclusiveStartKey: startKey,
		})
		if err != nil {
			return nil, classifyDynamoError("find-all", err)
		}
		page, err := unmarshalPayments("find-all", out.Items)
		if err != nil {
			return nil, err
		}
		payments = append(payments, page...)
		if len(out.LastEvaluatedKey) == 0 {
			break
		}
		startKey = out.LastEvaluatedKey
	}
	return payments, nil
}

// ExistsByTransactionID reads the marker item with a consistent read, so a
// dedup check sees writes from concurrent invocations immediately.
func (r *PaymentDynamoRepository) ExistsByTransactionID(ctx context.Context, transactionID string) (bool, error) {
	out, err := r.ddb.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(r.tableName),
		Key: map[string]types.AttributeValue{
			"id": &types.AttributeValueMemberS{Value: txnLockPrefix + transactionID},
		},
		ConsistentRead: aws.Bool(true),
	})
	if err != nil {
		return false, classifyDynamoError("exists-by-transaction-id", err)
	}
	return len(out.Item) > 0, nil
}

func unmarshalPayments(op string, raws []map[string]types.AttributeValue) ([]entities.Payment, error) {
	payments := make([]entities.Payment, 0, len(raws))
	for _, raw := range raws {
		var it paymentItem
		if err := attributevalue.UnmarshalMap(raw, &it); err != nil {
			return nil, interfaces.NewStorageError(interfaces.StorageFatal, op, err)
		}
		payments = append(payments, fromPaymentItem(it))
	}
	return payments, nil
}

func toPaymentItem(p entities.Payment) paymentItem {
	return paymentItem{
		ID:               p.ID.String(),
		Amount:           p.Amount.StringFixed(2),
		Currency:         string(p.Currency),
		Description:      p.Description,
		Status:           string(p.Status),
		PayerName:        p.PayerName,
		PayerEmail:       p.PayerEmail,
		RecipientName:    p.RecipientName,
		RecipientAccount: p.RecipientAccount,
		TransactionID:    p.TransactionID,
		CreatedAt:        p.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:        p.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func fromPaymentItem(it paymentItem) entities.Payment {
	id, _ := uuid.Parse(it.ID)
	amount, _ := decimal.NewFromString(it.Amount)
	createdAt, _ := time.Parse(time.RFC3339Nano, it.CreatedAt)
	updatedAt, _ := time.Parse(time.RFC3339Nano, it.UpdatedAt)
	return entities.Payment{
		ID:               id,
		Amount:           amount,
		Currency:         entities.Currency(it.Currency),
		Description:      it.Description,
		Status:           entities.PaymentStatus(it.Status),
		PayerName:        it.PayerName,
		PayerEmail:       it.PayerEmail,
		RecipientName:    it.RecipientName,
		RecipientAccount: it.RecipientAccount,
		TransactionID:    it.TransactionID,
		CreatedAt:        createdAt,
		UpdatedAt:        updatedAt,
	}
}
