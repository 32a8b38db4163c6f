// Package notify delivers transactional email for the job board. The default
// transport writes messages to stdout; production deployments swap in a real
// mailer behind the Notifier interface.
package notify

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Message is a rendered email ready for delivery.
type Message struct {
	To      string
	Subject string
	Body    string
}

// Notifier delivers rendered messages.
type Notifier interface {
	Send(ctx context.Context, msg Message) error
}

// NotifierFunc adapts a function to the Notifier interface.
type NotifierFunc func(ctx context.Context, msg Message) error

// Send implements Notifier.
func (f NotifierFunc) Send(ctx context.Context, msg Message) error {
	if f == nil {
		return nil
	}
	return f(ctx, msg)
}

// Console is the development transport: it prints the message instead of
// sending it.
type Console struct{}

// Send implements Notifier.
func (Console) Send(_ context.Context, msg Message) error {
	fmt.Println("\n========== EMAIL SENT ==========")
	fmt.Println("To: " + msg.To)
	fmt.Println("Subject: " + msg.Subject)
	fmt.Println("Body: " + msg.Body)
	fmt.Println("===============================")
	return nil
}

type noopNotifier struct{}

func (noopNotifier) Send(context.Context, Message) error { return nil }

// Normalize returns a usable Notifier even when nil is passed.
func Normalize(n Notifier) Notifier {
	if n == nil {
		return noopNotifier{}
	}
	return n
}

// JobInfo is the subset of a job posting the templates need.
type JobInfo struct {
	Title        string
	Category     string
	Location     string
	JobType      string
	Salary       string
	EmployerName string
}

// CandidateInfo is the subset of an applicant the templates need.
type CandidateInfo struct {
	Name            string
	Email           string
	Skills          []string
	DesiredJobTitle string
}

const signature = "\n\nBest regards,\nJob Portal Team"

// EmailVerification renders the signup verification code message.
func EmailVerification(to, code string) Message {
	return Message{
		To:      to,
		Subject: "Email Verification - Job Portal",
		Body: "Welcome to Job Portal!\n\n" +
			"Your email verification code is: " + code + "\n\n" +
			"This code will expire in 10 minutes.\n\n" +
			"If you didn't create an account, please ignore this email." +
			signature,
	}
}

// PasswordReset renders the reset link message.
func PasswordReset(to, resetLink string) Message {
	return Message{
		To:      to,
		Subject: "Password Reset - Job Portal",
		Body: "We received a request to reset your password.\n\n" +
			"Use the link below to choose a new password:\n\n" +
			resetLink + "\n\n" +
			"This link will expire in 24 hours. If you didn't request a reset, please ignore this email." +
			signature,
	}
}

// ApplicationReceived confirms to the candidate that their application landed.
func ApplicationReceived(to string, job JobInfo, candidate CandidateInfo) Message {
	name := candidate.Name
	if name == "" {
		name = "Candidate"
	}
	employer := job.EmployerName
	if employer == "" {
		employer = "our company"
	}
	return Message{
		To:      to,
		Subject: "Application Received - Job Portal",
		Body: "Dear " + name + ",\n\n" +
			"Thank you for applying for the position of " + job.Title + " at " + employer + ".\n\n" +
			"We have received your application and our team will review it shortly.\n\n" +
			"Job Details:\n" +
			"- Position: " + job.Title + "\n" +
			"- Location: " + job.Location + "\n" +
			"- Applied Date: " + time.Now().Format("1/2/2006") +
			signature,
	}
}

// ApplicationUpdate notifies the candidate of a status change.
func ApplicationUpdate(to, candidateName, jobTitle, status string) Message {
	var note string
	switch status {
	case "interview":
		note = "Congratulations! You have been selected for an interview. We will contact you shortly with the details."
	case "accepted":
		note = "Congratulations! Your application has been accepted. Our HR team will reach out to you soon."
	case "rejected":
		note = "Thank you for your interest. Unfortunately, we have decided to move forward with other candidates. We encourage you to apply for other positions that match your skills."
	default:
		note = "Your application is currently being reviewed."
	}

	return Message{
		To:      to,
		Subject: "Application Update: " + title(status),
		Body: "Dear " + candidateName + ",\n\n" +
			"Your application for the position of " + jobTitle + " has been updated.\n\n" +
			"New Status: " + title(status) + "\n\n" +
			note +
			signature,
	}
}

// JobPosted confirms a new posting to the employer.
func JobPosted(to string, job JobInfo) Message {
	body := "Dear " + job.EmployerName + ",\n\n" +
		"Your job posting has been successfully created and is now live on Job Portal.\n\n" +
		"Job Details:\n" +
		"- Position: " + job.Title + "\n" +
		"- Category: " + job.Category + "\n" +
		"- Location: " + job.Location + "\n" +
		"- Job Type: " + job.JobType + "\n"
	if job.Salary != "" {
		body += "- Salary: " + job.Salary + "\n"
	}
	body += "\nCandidates can now view and apply for this position." + signature

	return Message{
		To:      to,
		Subject: "Job Posted Successfully - Job Portal",
		Body:    body,
	}
}

// NewApplication notifies the employer of an incoming application.
func NewApplication(to string, job JobInfo, candidate CandidateInfo) Message {
	body := "Dear " + job.EmployerName + ",\n\n" +
		"You have received a new application for the position of " + job.Title + ".\n\n" +
		"Candidate Details:\n" +
		"- Name: " + candidate.Name + "\n" +
		"- Email: " + candidate.Email + "\n"
	if len(candidate.Skills) > 0 {
		body += "- Skills: " + strings.Join(candidate.Skills, ", ") + "\n"
	}
	if candidate.DesiredJobTitle != "" {
		body += "- Desired Position: " + candidate.DesiredJobTitle + "\n"
	}
	body += "\nLog in to your employer dashboard to review the application." + signature

	return Message{
		To:      to,
		Subject: "New Application Received - " + job.Title,
		Body:    body,
	}
}

func title(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
