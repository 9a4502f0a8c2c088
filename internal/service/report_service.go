package service

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/aws/aws-sdk-go-v2/service/sesv2/types"

	"learnquest/internal/models"
)

// ReportService emails class progress summaries to teachers via Amazon
// SES. When no sender address is configured the service is disabled
// and sends become logged no-ops.
type ReportService struct {
	client    *sesv2.Client
	fromEmail string
	fromName  string
	enabled   bool
}

// NewReportService creates a new report service
func NewReportService(awsRegion, fromEmail, fromName string) (*ReportService, error) {
	if fromEmail == "" {
		log.Println("Report emails disabled: SES_FROM_EMAIL not configured")
		return &ReportService{enabled: false}, nil
	}

	cfg, err := awsconfig.LoadDefaultConfig(context.TODO(),
		awsconfig.WithRegion(awsRegion),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load AWS config: %w", err)
	}

	log.Printf("Report emails enabled: from=%s, region=%s", fromEmail, awsRegion)
	return &ReportService{
		client:    sesv2.NewFromConfig(cfg),
		fromEmail: fromEmail,
		fromName:  fromName,
		enabled:   true,
	}, nil
}

// IsEnabled returns whether report emails are configured
func (s *ReportService) IsEnabled() bool {
	return s.enabled
}

// SendProgressReport emails a plain-text summary of every student's
// progress to the given teacher address
func (s *ReportService) SendProgressReport(ctx context.Context, toEmail string, progress map[string]*models.ProgressRecord) error {
	if !s.enabled {
		log.Printf("Skipping progress report to %s: report emails disabled", toEmail)
		return nil
	}

	subject := "LearnQuest class progress report"
	body := buildReportBody(progress)

	_, err := s.client.SendEmail(ctx, &sesv2.SendEmailInput{
		FromEmailAddress: aws.String(fmt.Sprintf("%s <%s>", s.fromName, s.fromEmail)),
		Destination: &types.Destination{
			ToAddresses: []string{toEmail},
		},
		Content: &types.EmailContent{
			Simple: &types.Message{
				Subject: &types.Content{Data: aws.String(subject)},
				Body: &types.Body{
					Text: &types.Content{Data: aws.String(body)},
				},
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to send progress report: %w", err)
	}

	log.Printf("Progress report sent to %s", toEmail)
	return nil
}

// buildReportBody renders the progress map as plain text, one section
// per student, ordered by student name for stable output
func buildReportBody(progress map[string]*models.ProgressRecord) string {
	ids := make([]string, 0, len(progress))
	for id := range progress {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		return progress[ids[i]].Name < progress[ids[j]].Name
	})

	var b strings.Builder
	if len(ids) == 0 {
		b.WriteString("No student activity recorded yet.\n")
		return b.String()
	}

	for _, id := range ids {
		record := progress[id]
		name := record.Name
		if name == "" {
			name = id
		}
		fmt.Fprintf(&b, "%s\n", name)
		fmt.Fprintf(&b, "  Lessons completed: %d\n", len(record.LessonsCompleted))
		fmt.Fprintf(&b, "  Videos completed: %d\n", len(record.VideosCompleted))
		for _, result := range record.QuizResults {
			fmt.Fprintf(&b, "  Quiz %q: %d%% on %s\n",
				result.QuizTitle, result.Score, result.Date.Format("Jan 2, 2006"))
		}
		b.WriteString("\n")
	}

	return b.String()
}
