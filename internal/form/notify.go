package form

// Kind distinguishes success from failure notifications.
type Kind int

const (
	KindSuccess Kind = iota
	KindFailure
)

func (k Kind) String() string {
	if k == KindSuccess {
		return "success"
	}
	return "failure"
}

// Notification is a short message shown to whoever is driving the form.
type Notification struct {
	Kind        Kind
	Title       string
	Description string
}

// Notifier receives form notifications.
type Notifier interface {
	Notify(n Notification)
}

// NotifierFunc adapts a plain function to a Notifier.
type NotifierFunc func(Notification)

func (f NotifierFunc) Notify(n Notification) { f(n) }

func validationFailed() Notification {
	return Notification{Kind: KindFailure, Title: "Validation Error", Description: "Fill required fields"}
}

func rejected(msg string) Notification {
	if msg == "" {
		msg = "Failed to create post"
	}
	return Notification{Kind: KindFailure, Title: "Error", Description: msg}
}

func serverError() Notification {
	return Notification{Kind: KindFailure, Title: "Error", Description: "Server error"}
}

func created() Notification {
	return Notification{Kind: KindSuccess, Title: "Success", Description: "Blog post created"}
}
