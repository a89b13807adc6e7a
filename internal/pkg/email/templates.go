package email

// BaseTemplate wraps a plain-text body for HTML mail clients.
const BaseTemplate = `<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { margin: 0; padding: 0; font-family: -apple-system, 'Segoe UI', Roboto, Arial, sans-serif; background: #fdf2f8; color: #331a26; }
        .container { max-width: 560px; margin: 0 auto; padding: 32px 16px; }
        .card { background: #ffffff; border-radius: 12px; padding: 24px; border: 1px solid #f9d2e5; }
        h2 { font-size: 20px; margin: 0 0 16px; color: #be185d; }
        pre { font-family: inherit; white-space: pre-wrap; font-size: 15px; line-height: 1.6; margin: 0; }
    </style>
</head>
<body>
    <div class="container">
        <div class="card">
            <h2>{{.Subject}}</h2>
            <pre>{{.Body}}</pre>
        </div>
    </div>
</body>
</html>
`
