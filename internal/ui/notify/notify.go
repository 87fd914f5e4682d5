// Package notify sends desktop notifications through fyne.
package notify

import (
	"fyne.io/fyne/v2"
)

// Sender is the part of fyne.App used to post notifications.
type Sender interface {
	SendNotification(notification *fyne.Notification)
}

// Notifier posts titled desktop notifications.
type Notifier struct {
	sender Sender
}

// New creates a Notifier. A nil sender makes Notify a no-op.
func New(sender Sender) *Notifier {
	return &Notifier{sender: sender}
}

// Notify posts a notification. Delivery failures are not reported.
func (notifier *Notifier) Notify(title, message string) {
	if notifier == nil || notifier.sender == nil {
		return
	}
	notifier.sender.SendNotification(fyne.NewNotification(title, message))
}
