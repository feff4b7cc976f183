// Package ticket renders printable HTML order tickets sized for thermal
// receipt printers.
package ticket

import (
	"fmt"
	"html/template"
	"strconv"
	"strings"

	"trattoria/internal/domains/order/model/dto"
	"trattoria/shared/constant"
	"trattoria/shared/timezone"
)

const ticketTemplate = `<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>Order Ticket - {{.Title}} - Order #{{.OrderID}}</title>
    <style>
        body { font-family: Arial, sans-serif; margin: 20px; font-size: 12px; }
        .ticket { border: 1px solid #000; padding: 10px; width: 280px; margin: auto; }
        h1 { text-align: center; margin-top: 0; font-size: 1.3em; }
        p { margin: 3px 0; }
        ul { list-style-type: none; padding: 0; margin:0; }
        li { margin-bottom: 5px; border-bottom: 1px dashed #ccc; padding-bottom: 3px; }
        li:last-child { border-bottom: none; }
        .item-name { font-weight: bold; }
        .item-details { display: flex; justify-content: space-between; }
        .special-requests { font-style: italic; font-size: 0.9em; color: #555; margin-left: 8px;}
    </style>
</head>
<body>
    <div class="ticket">
        <h1>{{.Title}}</h1>
        <p><strong>Order ID:</strong> {{.OrderID}}</p>
        <p><strong>Table #:</strong> {{.TableNumber}}</p>
        <p><strong>Timestamp:</strong> {{.Timestamp}}</p>
        <hr>
        <p><strong>Items:</strong></p>
        <ul>
{{- range .Items}}
            <li>
                <div class="item-details">
                    <span class="item-name">{{.Quantity}}x {{.Name}}</span>
                </div>
                {{- if .Note}}
                <p class="special-requests"><em>Note: {{.Note}}</em></p>
                {{- end}}
            </li>
{{- end}}
        </ul>
    </div>
</body>
</html>
`

var tmpl = template.Must(template.New("ticket").Parse(ticketTemplate))

type itemView struct {
	Quantity int
	Name     string
	Note     string
}

type ticketView struct {
	Title       string
	OrderID     int64
	TableNumber string
	Timestamp   string
	Items       []itemView
}

// Render produces the HTML ticket for the given print selection.
func Render(print dto.PrintTicket) (string, error) {
	view := ticketView{
		Title:       print.Title,
		OrderID:     print.Order.ID,
		TableNumber: "N/A",
		Timestamp:   timezone.Format(print.Order.CreatedAt, constant.TimestampFormat),
	}

	if print.Order.ReservationTableNumber.Valid {
		view.TableNumber = strconv.FormatInt(print.Order.ReservationTableNumber.Int64, 10)
	}

	view.Items = make([]itemView, len(print.Items))
	for i, item := range print.Items {
		view.Items[i] = itemView{
			Quantity: item.Quantity,
			Name:     "N/A",
			Note:     item.SpecialRequests.String,
		}

		if item.MenuItemName.Valid {
			view.Items[i].Name = item.MenuItemName.String
		}
	}

	var builder strings.Builder
	if err := tmpl.Execute(&builder, view); err != nil {
		return "", fmt.Errorf("failed to render order ticket: %w", err)
	}

	return builder.String(), nil
}

// EmptyMessage is the response body when the requested section of the
// order has no items. The phrasing derives from the ticket title, e.g.
// "Food Order" becomes "No Food items found for this order.".
func EmptyMessage(title string) string {
	subject := strings.ReplaceAll(strings.ToLower(title), " order", "")
	if subject != "" {
		subject = strings.ToUpper(subject[:1]) + subject[1:]
	}

	return fmt.Sprintf("No %s items found for this order.", subject)
}
