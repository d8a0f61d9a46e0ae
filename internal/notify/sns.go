package notify

import (
	"context"
	"fmt"
	"strings"

	apperrors "loan-saarthi/internal/common/errors"
	"loan-saarthi/internal/common/logger"
	"loan-saarthi/internal/common/metrics"
	"loan-saarthi/internal/models"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"
)

const (
	channelSMS     = "sms"
	countryPrefix  = "+91"
	smsTypeAttr    = "AWS.SNS.SMS.SMSType"
	smsSenderAttr  = "AWS.SNS.SMS.SenderID"
	smsTransaction = "Transactional"
)

// Publisher is the part of the SNS client the notifier needs.
type Publisher interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// SNSNotifier sends the sanction notice as a transactional SMS.
type SNSNotifier struct {
	client   Publisher
	senderID string
	logger   logger.Logger
}

func NewSNSNotifier(client Publisher, senderID string, log logger.Logger) *SNSNotifier {
	return &SNSNotifier{
		client:   client,
		senderID: senderID,
		logger:   log.WithFields(map[string]interface{}{"component": "sanction-notifier", "channel": channelSMS}),
	}
}

func (s *SNSNotifier) SanctionIssued(ctx context.Context, n Notice) error {
	input := &sns.PublishInput{
		PhoneNumber: aws.String(e164(n.Phone)),
		Message:     aws.String(sanctionMessage(n)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			smsTypeAttr: {DataType: aws.String("String"), StringValue: aws.String(smsTransaction)},
		},
	}
	if s.senderID != "" {
		input.MessageAttributes[smsSenderAttr] = types.MessageAttributeValue{
			DataType:    aws.String("String"),
			StringValue: aws.String(s.senderID),
		}
	}

	out, err := s.client.Publish(ctx, input)
	if err != nil {
		metrics.NotificationsSent.WithLabelValues(channelSMS, "failed").Inc()
		s.logger.Error("sanction sms failed", map[string]interface{}{
			"sessionId": n.SessionID,
			"error":     err,
		})
		return apperrors.NewNotificationSendFailedError(channelSMS, err)
	}

	metrics.NotificationsSent.WithLabelValues(channelSMS, "sent").Inc()
	s.logger.Info("sanction sms sent", map[string]interface{}{
		"sessionId": n.SessionID,
		"messageId": aws.ToString(out.MessageId),
	})
	return nil
}

func sanctionMessage(n Notice) string {
	return fmt.Sprintf("Dear %s, your personal loan of %s for %d months is sanctioned. EMI: %s/month.",
		n.ApplicantName, models.FormatRupees(n.Amount), n.TenureMonths, models.FormatRupees(n.EMI))
}

func e164(phone string) string {
	if strings.HasPrefix(phone, "+") {
		return phone
	}
	return countryPrefix + phone
}
