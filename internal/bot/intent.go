package bot

import (
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/evyataryagoni/ipmapbot/internal/iputil"
)

// Intent is the classified meaning of one inbound message
// Classification is an explicit step so the dispatch order is visible in
// one place instead of being spread across registered predicates
type Intent int

const (
	// IntentIgnore means the message matched nothing and gets no reply
	IntentIgnore Intent = iota
	// IntentStart is the /start command
	IntentStart
	// IntentHelp is the "Help" button or the word "help"
	IntentHelp
	// IntentMyIP is the "My IP" button or the words "my ip"
	IntentMyIP
	// IntentLookup is a message whose text is a valid IPv4 address
	IntentLookup
)

// String returns the metrics label for the intent
func (i Intent) String() string {
	switch i {
	case IntentStart:
		return "start"
	case IntentHelp:
		return "help"
	case IntentMyIP:
		return "my_ip"
	case IntentLookup:
		return "lookup"
	default:
		return "ignored"
	}
}

// Classify maps an inbound message to an intent, evaluated in priority
// order:
//
//  1. the /start command
//  2. text equals "help" (case-insensitive)
//  3. text equals "my ip" (case-insensitive)
//  4. trimmed text is a valid IPv4 address
//  5. anything else is ignored
//
// For IntentLookup the second return value is the trimmed IP to look up;
// it is empty for every other intent.
func Classify(msg *tgbotapi.Message) (Intent, string) {
	if msg == nil || msg.Text == "" {
		return IntentIgnore, ""
	}

	if msg.IsCommand() && msg.Command() == "start" {
		return IntentStart, ""
	}

	switch strings.ToLower(msg.Text) {
	case "help":
		return IntentHelp, ""
	case "my ip":
		return IntentMyIP, ""
	}

	if ip := strings.TrimSpace(msg.Text); iputil.IsValidIPv4(ip) {
		return IntentLookup, ip
	}

	return IntentIgnore, ""
}
