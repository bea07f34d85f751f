package sms

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	"github.com/aws/aws-sdk-go-v2/service/sns/types"

	"communityevents/internal/domain"
)

// SNSConfig holds configuration for AWS SNS.
type SNSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
}

// SenderConfig holds configuration for creating an SMS sender.
type SenderConfig struct {
	Provider string
	SenderID string
	SNS      SNSConfig
}

// NewSender creates an SMS sender from config. Provider "sns" uses AWS SNS;
// "noop" or unknown uses a no-op sender that only logs.
func NewSender(config SenderConfig) (domain.SMSSender, error) {
	switch config.Provider {
	case "sns":
		awsCfg := aws.Config{
			Region: config.SNS.Region,
			Credentials: aws.NewCredentialsCache(
				credentials.NewStaticCredentialsProvider(
					config.SNS.AccessKeyID,
					config.SNS.SecretAccessKey,
					"",
				),
			),
		}
		return &snsSender{
			client:   sns.NewFromConfig(awsCfg),
			senderID: config.SenderID,
		}, nil
	case "noop":
		return &noopSender{}, nil
	default:
		log.Printf("[SMS] Unknown SMS provider %q, using noop", config.Provider)
		return &noopSender{}, nil
	}
}

type snsSender struct {
	client   *sns.Client
	senderID string
}

func (s *snsSender) Send(ctx context.Context, phoneNumber, message string) error {
	input := &sns.PublishInput{
		PhoneNumber: aws.String(phoneNumber),
		Message:     aws.String(message),
	}
	if s.senderID != "" {
		input.MessageAttributes = map[string]types.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {
				DataType:    aws.String("String"),
				StringValue: aws.String(s.senderID),
			},
		}
	}
	result, err := s.client.Publish(ctx, input)
	if err != nil {
		return fmt.Errorf("failed to send SMS via SNS: %w", err)
	}
	log.Printf("[SMS] Message sent via SNS. MessageID: %s", aws.ToString(result.MessageId))
	return nil
}

type noopSender struct{}

func (n *noopSender) Send(ctx context.Context, phoneNumber, message string) error {
	log.Println("[SMS] Message would be sent (noop)", "to", phoneNumber)
	return nil
}
