package utils

import (
	"log"
	"os"
	"strconv"

	"MedicAid/models"

	"gopkg.in/gomail.v2"
)

// SendRedAlertEmail notifies the patient by email when an uploaded report
// comes back classified RED ALERT. Best effort: the upload pipeline does
// not fail when the mail cannot be delivered.
func SendRedAlertEmail(email string, analysis models.AnalysisRecord) error {
	fromEmail := os.Getenv("SMTP_USER")

	m := gomail.NewMessage()
	m.SetHeader("From", fromEmail)
	m.SetHeader("To", email)
	m.SetHeader("Subject", "Urgent finding in your latest medical report")

	m.SetBody("text/plain",
		"Your report dated "+analysis.ReportDate+" was flagged RED ALERT.\n\n"+
			"Key finding: "+analysis.KeyFinding+"\n"+
			"Recommended specialist: "+analysis.RecommendedSpecialist+"\n\n"+
			"Please consult a doctor promptly. This notification is generated from "+
			"AI-extracted data and is not a diagnosis.")

	htmlBody := `
	<!DOCTYPE html>
	<html>
	<head>
		<title>Urgent Report Finding</title>
		<style>
			body { font-family: Arial, sans-serif; background-color: #f4f4f4; margin: 0; padding: 0; }
			.container { background-color: #ffffff; margin: 20px auto; padding: 20px; border-radius: 8px; max-width: 600px; }
			h1 { color: #b91c1c; }
			p { color: #666666; }
			.finding { font-weight: bold; color: #111111; }
		</style>
	</head>
	<body>
		<div class="container">
			<h1>RED ALERT</h1>
			<p>Your report dated ` + analysis.ReportDate + ` contains an urgent finding:</p>
			<p class="finding">` + analysis.KeyFinding + `</p>
			<p>Recommended specialist: ` + analysis.RecommendedSpecialist + `</p>
			<p>Please consult a doctor promptly. This notification is generated from AI-extracted data and is not a diagnosis.</p>
		</div>
	</body>
	</html>`
	m.AddAlternative("text/html", htmlBody)

	host := os.Getenv("SMTP_HOST")
	portStr := os.Getenv("SMTP_PORT")
	port, err := strconv.Atoi(portStr)
	if err != nil {
		log.Printf("Invalid SMTP_PORT %q, defaulting to 587", portStr)
		port = 587
	}

	d := gomail.NewDialer(host, port, fromEmail, os.Getenv("SMTP_PASS"))
	if err := d.DialAndSend(m); err != nil {
		log.Printf("Failed to send red alert email: %v", err)
		return err
	}
	return nil
}
