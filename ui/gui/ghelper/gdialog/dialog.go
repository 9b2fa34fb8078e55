package gdialog

import "github.com/sqweek/dialog"

// AskShuffle shows a blocking yes/no OS dialog, true means shuffle again.
// Run it off the game loop.
func AskShuffle(title, body string) bool {
	return dialog.Message("%s", body).Title(title).YesNo()
}
