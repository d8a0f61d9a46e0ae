package notify

import (
	"context"
	"errors"
	"testing"
	"time"

	apperrors "loan-saarthi/internal/common/errors"
	"loan-saarthi/internal/common/logger"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	inputs []*sns.PublishInput
	err    error
}

func (f *fakePublisher) Publish(_ context.Context, in *sns.PublishInput, _ ...func(*sns.Options)) (*sns.PublishOutput, error) {
	f.inputs = append(f.inputs, in)
	if f.err != nil {
		return nil, f.err
	}
	return &sns.PublishOutput{MessageId: aws.String("msg-1")}, nil
}

func testNotice() Notice {
	return Notice{
		SessionID:     "s-1",
		ApplicantID:   "1",
		ApplicantName: "Rohan Sharma",
		Phone:         "9876543210",
		Amount:        500000,
		TenureMonths:  24,
		EMI:           23537,
		IssuedAt:      time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC),
	}
}

func TestSNSNotifier_SanctionIssued(t *testing.T) {
	tests := []struct {
		name           string
		senderID       string
		publishErr     error
		validateOutput func(t *testing.T, pub *fakePublisher, err error)
	}{
		{
			name:     "publishes transactional sms",
			senderID: "SAARTHI",
			validateOutput: func(t *testing.T, pub *fakePublisher, err error) {
				require.NoError(t, err)
				require.Len(t, pub.inputs, 1)
				in := pub.inputs[0]
				assert.Equal(t, "+919876543210", aws.ToString(in.PhoneNumber))
				assert.Equal(t, "Dear Rohan Sharma, your personal loan of ₹5,00,000 for 24 months is sanctioned. EMI: ₹23,537/month.", aws.ToString(in.Message))
				assert.Equal(t, smsTransaction, aws.ToString(in.MessageAttributes[smsTypeAttr].StringValue))
				assert.Equal(t, "SAARTHI", aws.ToString(in.MessageAttributes[smsSenderAttr].StringValue))
			},
		},
		{
			name: "sender id omitted when unset",
			validateOutput: func(t *testing.T, pub *fakePublisher, err error) {
				require.NoError(t, err)
				_, ok := pub.inputs[0].MessageAttributes[smsSenderAttr]
				assert.False(t, ok)
			},
		},
		{
			name:       "publish failure is a retryable notification error",
			publishErr: errors.New("throttled"),
			validateOutput: func(t *testing.T, pub *fakePublisher, err error) {
				require.Error(t, err)
				assert.True(t, apperrors.HasCode(err, apperrors.ErrCodeNotificationSendFailed))
				assert.True(t, apperrors.AsStandardError(err).Retryable)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pub := &fakePublisher{err: tt.publishErr}
			n := NewSNSNotifier(pub, tt.senderID, logger.NewTestLogger(t))

			err := n.SanctionIssued(context.Background(), testNotice())
			tt.validateOutput(t, pub, err)
		})
	}
}

func TestE164(t *testing.T) {
	assert.Equal(t, "+919876543210", e164("9876543210"))
	assert.Equal(t, "+14155550100", e164("+14155550100"))
}

func TestNopNotifier(t *testing.T) {
	assert.NoError(t, NopNotifier{}.SanctionIssued(context.Background(), testNotice()))
}
