package mailer

import (
	"bytes"
	"fmt"
	"html/template"
	"time"
)

var otpTemplate = template.Must(template.New("otp").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="text-align: center; margin-bottom: 30px;">
    <h1 style="color: #0f766e; margin: 0;">الاعتماد المهني</h1>
    <p style="color: #666; margin: 5px 0;">Professional Accreditation</p>
  </div>
  <div style="background: #f8fafc; border-radius: 12px; padding: 30px; text-align: center;">
    <h2 style="color: #1e293b; margin: 0 0 10px;">Verification Code</h2>
    <p style="color: #64748b; margin: 0 0 20px;">Use this code to verify your email address:</p>
    <div style="background: #0f766e; color: white; font-size: 32px; font-weight: bold; letter-spacing: 8px; padding: 20px 40px; border-radius: 8px; display: inline-block;">{{.Code}}</div>
    <p style="color: #94a3b8; font-size: 14px; margin-top: 20px;">This code expires in {{.ExpiresIn}}.</p>
  </div>
  <p style="color: #94a3b8; font-size: 12px; text-align: center; margin-top: 30px;">If you didn't request this code, please ignore this email.</p>
</div>`))

var approvalTemplate = template.Must(template.New("approval").Parse(`<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto; padding: 20px;">
  <div style="text-align: center; margin-bottom: 30px;">
    <h1 style="color: #0f766e; margin: 0;">الاعتماد المهني</h1>
    <p style="color: #666; margin: 5px 0;">Professional Accreditation</p>
  </div>
  <div style="background: #f0fdf4; border: 1px solid #22c55e; border-radius: 12px; padding: 30px;">
    <h2 style="color: #166534; text-align: center; margin: 0 0 20px;">Congratulations!</h2>
    <p style="color: #1e293b;">Dear <strong>{{.Name}}</strong>,</p>
    <p style="color: #64748b;">Your application has been <strong style="color: #22c55e;">approved</strong>. Your professional accreditation certificate is now active.</p>
    {{if .CertificateSerial}}<div style="background: white; border-radius: 8px; padding: 20px; margin: 20px 0; text-align: center;">
      <p style="color: #64748b; margin: 0 0 5px; font-size: 14px;">Certificate Serial Number:</p>
      <p style="color: #0f766e; font-size: 24px; font-weight: bold; margin: 0;">{{.CertificateSerial}}</p>
    </div>{{end}}
    <p style="color: #64748b; font-size: 14px;">You can verify your certificate at any time on our website.</p>
  </div>
  <p style="color: #94a3b8; font-size: 12px; text-align: center; margin-top: 30px;">SVP International PACC. All rights reserved.</p>
</div>`))

func renderOTP(code string, ttl time.Duration) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Code      string
		ExpiresIn string
	}{code, humanizeTTL(ttl)}
	if err := otpTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// humanizeTTL renders whole hours, minutes or seconds, whichever fits first.
func humanizeTTL(ttl time.Duration) string {
	switch {
	case ttl >= time.Hour && ttl%time.Hour == 0:
		return plural(int(ttl/time.Hour), "hour")
	case ttl >= time.Minute:
		return plural(int(ttl.Round(time.Minute)/time.Minute), "minute")
	default:
		return plural(int(ttl.Round(time.Second)/time.Second), "second")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}

func renderApproval(name, certificateSerial string) (string, error) {
	var buf bytes.Buffer
	data := struct {
		Name              string
		CertificateSerial string
	}{name, certificateSerial}
	if err := approvalTemplate.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
