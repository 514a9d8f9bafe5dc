package email

// BaseTemplate is the layout every email is wrapped in.
const BaseTemplate = `
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <style>
        body { margin: 0; padding: 0; font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; background: #f6f4f0; color: #1f1f1f; }
        .container { max-width: 600px; margin: 0 auto; padding: 40px 20px; }
        .card { background: #ffffff; border-radius: 12px; padding: 32px; border: 1px solid #e6e1d8; }
        .logo { text-align: center; margin-bottom: 24px; font-size: 26px; font-weight: 700; }
        h2 { font-size: 22px; margin: 0 0 16px; }
        p { color: #555555; font-size: 16px; line-height: 1.6; margin: 0 0 16px; }
        .info-box { background: #faf8f5; border-radius: 8px; padding: 16px; margin: 16px 0; }
        .footer { text-align: center; margin-top: 32px; color: #999999; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="card">
            <div class="logo">PandaLens</div>
            {{.Content}}
        </div>
        <div class="footer">
            <p>You received this email because of activity on PandaLens.</p>
        </div>
    </div>
</body>
</html>
`

// BookingRequestedTemplate confirms a booking request to the contact email.
const BookingRequestedTemplate = `
<h2>We received your booking request</h2>
<p>Hi {{.Name}}, your request has been sent to the photographer.</p>
<div class="info-box">
    <p><strong>Date:</strong> {{.Date}}</p>
    <p><strong>Time:</strong> {{.StartTime}}-{{.EndTime}}</p>
    {{if .ServiceType}}<p><strong>Service:</strong> {{.ServiceType}}</p>{{end}}
    <p><strong>Price:</strong> {{.Price}}</p>
</div>
<p>The booking is pending until the photographer confirms it.</p>
`

// WelcomeTemplate greets a freshly created account.
const WelcomeTemplate = `
<h2>Welcome to PandaLens</h2>
<p>Hi {{.Name}}, your account is ready.</p>
<p>Browse photographers, follow the ones you like and book a session straight from their calendar.</p>
`
