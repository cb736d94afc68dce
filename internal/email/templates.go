package email

import (
	"bytes"
	"fmt"
	"html/template"
)

// Templates embebidos del storefront. Mismo contenido para HTML y una
// versión de texto plano con el link directo.

var verifyHTML = template.Must(template.New("verify").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">¡Bienvenido a Hero Threads!</h2>
  <p>Hola {{.Name}},</p>
  <p>Gracias por registrarte en Hero Threads. Para completar tu registro, por favor verifica tu dirección de email haciendo clic en el siguiente enlace:</p>
  <div style="text-align: center; margin: 30px 0;">
    <a href="{{.Link}}" style="background-color: #007bff; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px; display: inline-block;">Verificar Email</a>
  </div>
  <p>Si el botón no funciona, puedes copiar y pegar este enlace en tu navegador:</p>
  <p style="word-break: break-all; color: #666;">{{.Link}}</p>
  <p>Este enlace expirará en 24 horas.</p>
  <p>Si no solicitaste este registro, puedes ignorar este email.</p>
  <hr style="margin: 30px 0; border: none; border-top: 1px solid #eee;">
  <p style="color: #666; font-size: 12px;">Este es un email automático, por favor no respondas a este mensaje.</p>
</div>`))

var resetHTML = template.Must(template.New("reset").Parse(`
<div style="font-family: Arial, sans-serif; max-width: 600px; margin: 0 auto;">
  <h2 style="color: #333;">Restablecer contraseña</h2>
  <p>Hola {{.Name}},</p>
  <p>Recibimos una solicitud para restablecer la contraseña de tu cuenta de Hero Threads. Haz clic en el siguiente enlace para elegir una nueva:</p>
  <div style="text-align: center; margin: 30px 0;">
    <a href="{{.Link}}" style="background-color: #007bff; color: white; padding: 12px 24px; text-decoration: none; border-radius: 5px; display: inline-block;">Restablecer Contraseña</a>
  </div>
  <p>Si el botón no funciona, puedes copiar y pegar este enlace en tu navegador:</p>
  <p style="word-break: break-all; color: #666;">{{.Link}}</p>
  <p>Este enlace expirará en 1 hora.</p>
  <p>Si no solicitaste este cambio, puedes ignorar este email.</p>
  <hr style="margin: 30px 0; border: none; border-top: 1px solid #eee;">
  <p style="color: #666; font-size: 12px;">Este es un email automático, por favor no respondas a este mensaje.</p>
</div>`))

type templateVars struct {
	Name string
	Link string
}

func renderVerify(vars templateVars) (html, text string, err error) {
	var buf bytes.Buffer
	if err := verifyHTML.Execute(&buf, vars); err != nil {
		return "", "", err
	}
	text = fmt.Sprintf(
		"Hola %s,\n\nGracias por registrarte en Hero Threads. Verifica tu email abriendo este enlace (expira en 24 horas):\n\n%s\n\nSi no solicitaste este registro, ignora este email.\n",
		vars.Name, vars.Link)
	return buf.String(), text, nil
}

func renderReset(vars templateVars) (html, text string, err error) {
	var buf bytes.Buffer
	if err := resetHTML.Execute(&buf, vars); err != nil {
		return "", "", err
	}
	text = fmt.Sprintf(
		"Hola %s,\n\nRecibimos una solicitud para restablecer tu contraseña de Hero Threads. Abrí este enlace (expira en 1 hora):\n\n%s\n\nSi no solicitaste este cambio, ignora este email.\n",
		vars.Name, vars.Link)
	return buf.String(), text, nil
}
