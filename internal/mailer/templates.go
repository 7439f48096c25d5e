package mailer

import (
	"bytes"
	"html/template"

	"github.com/veloura/boutique-service/internal/model"
)

var orderConfirmationTmpl = template.Must(template.New("order_confirmation").Parse(`
<h1>Merci pour votre commande</h1>
<p>Votre commande <strong>{{.Order.ID}}</strong> est confirmée.</p>
<table>
{{range .Order.Items}}
  <tr>
    <td>{{.ProductName}}{{if .Color}} / {{.Color}}{{end}}{{if .Size}} / {{.Size}}{{end}}</td>
    <td>x{{.Quantity}}</td>
    <td>{{printf "%.2f" .UnitPrice}} {{$.Currency}}</td>
  </tr>
{{end}}
</table>
<p>Total : <strong>{{printf "%.2f" .Order.Total}} {{.Currency}}</strong></p>
`))

type orderConfirmationData struct {
	Order    *model.Order
	Currency string
}

// RenderOrderConfirmation builds the HTML body for the paid-order email.
func RenderOrderConfirmation(order *model.Order) (string, error) {
	var buf bytes.Buffer
	err := orderConfirmationTmpl.Execute(&buf, orderConfirmationData{
		Order:    order,
		Currency: order.Currency,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}

var campaignTmpl = template.Must(template.New("campaign").Parse(`
{{.Body}}
<hr>
<p style="font-size:12px;color:#777">
  <a href="{{.UnsubscribeURL}}">Se désinscrire</a>
</p>
`))

type campaignData struct {
	Body           template.HTML
	UnsubscribeURL string
}

// RenderCampaign wraps the stored campaign body with the unsubscribe footer.
// The body is authored HTML and injected as-is.
func RenderCampaign(bodyHTML, unsubscribeURL string) (string, error) {
	var buf bytes.Buffer
	err := campaignTmpl.Execute(&buf, campaignData{
		Body:           template.HTML(bodyHTML),
		UnsubscribeURL: unsubscribeURL,
	})
	if err != nil {
		return "", err
	}
	return buf.String(), nil
}
