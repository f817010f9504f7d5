package checkout

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/Uried/Nexora/internal/viewmodel"
)

// Navigator abstracts how the client opens the WhatsApp deep link, so the
// mobile/desktop branch is testable without a real browser.
type Navigator interface {
	// OpenSameTab replaces the current page with url.
	OpenSameTab(url string) error
	// OpenNewTab opens url in a new tab or window.
	OpenNewTab(url string) error
}

// BuildMessage renders the order summary sent through WhatsApp.
func BuildMessage(view viewmodel.View, input Input) string {
	var b strings.Builder
	b.WriteString("*NOUVELLE COMMANDE NEXORA*\n\n")
	b.WriteString("*Informations client:*\n")
	fmt.Fprintf(&b, "Téléphone: %s\n", input.Phone)
	fmt.Fprintf(&b, "Adresse de livraison: %s\n\n", input.Address)

	b.WriteString("*Articles commandés:*\n")
	for _, line := range view.Lines {
		if line.Unavailable {
			continue
		}
		fmt.Fprintf(&b, "- %dx %s (%s): %s\n",
			line.Quantity, line.Name, line.Brand, viewmodel.FormatPrice(line.LineTotal))
	}

	fmt.Fprintf(&b, "\n*Sous-total:* %s\n", viewmodel.FormatPrice(view.Subtotal))
	fmt.Fprintf(&b, "*Frais de livraison:* %s\n", viewmodel.FormatPrice(view.ShippingFee))
	fmt.Fprintf(&b, "*TOTAL:* %s\n\n", viewmodel.FormatPrice(view.Total))

	if input.Notes != "" {
		fmt.Fprintf(&b, "*Notes:* %s\n\n", input.Notes)
	}
	b.WriteString("Merci pour votre commande!")
	return b.String()
}

// DeepLink builds the pre-filled chat URL for the given business number
// (country code plus number, no leading +).
func DeepLink(number, message string) string {
	return "https://wa.me/" + number + "?text=" + url.QueryEscape(message)
}

// handoff selects the navigation strategy: mobile clients navigate the current
// tab because mobile systems often fail to return focus after a popup-style
// open; everyone else gets a new tab.
func handoff(nav Navigator, mobile bool, url string) error {
	if mobile {
		return nav.OpenSameTab(url)
	}
	return nav.OpenNewTab(url)
}
