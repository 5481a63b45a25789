package bot

import (
	"fmt"
	"html"
	"strings"

	"github.com/evyataryagoni/ipmapbot/internal/models"
)

// Reply texts. The bot always sends HTML parse mode, so every dynamic
// value must go through html.EscapeString before interpolation.
const (
	greetingText = "<b>Hi!</b> I am a bot that looks up information about IP addresses.\n" +
		"Just send me any IP address or press a button below."

	helpText = "<b>📌 How to use this bot:</b>\n\n" +
		"1. Send me an <i>IPv4 address</i> (for example, 8.8.8.8)\n" +
		"2. Or press the <b>'My IP'</b> button\n\n" +
		"I will show the location details and send you a map.\n" +
		"You can open the map in any browser, on your phone or PC"

	manualEntryText = "Could not detect your IP automatically. " +
		"Please enter the IP address manually."

	recordHeader = "<b>🔍 IP information:</b>"

	mapCaption = "📍 Location map"

	noMapWarning = "\n\n⚠ <i>Could not create a map for this IP</i>"

	errorPrefix = "❌ "
)

// formatRecord renders the record as the HTML reply body:
// a header, then one "<b>label:</b> <code>value</code>" line per field
func formatRecord(r *models.IPRecord) string {
	lines := make([]string, 0, 8)
	for _, f := range r.Fields() {
		lines = append(lines, fmt.Sprintf("<b>%s:</b> <code>%s</code>", f.Label, html.EscapeString(f.Value)))
	}
	return recordHeader + "\n\n" + strings.Join(lines, "\n")
}

// formatError renders a lookup failure with the error marker
// The message may come from the provider, so it gets escaped too
func formatError(message string) string {
	return errorPrefix + html.EscapeString(message)
}
