package metrics

import "github.com/sirupsen/logrus"

// Recorder reports account and message activity. It satisfies auth.Events
// and socialmedia.Events.
type Recorder struct{}

func (Recorder) AccountCreated(id int, username string) {
	registrations.WithLabelValues("success").Inc()
	logrus.WithFields(logrus.Fields{"account_id": id, "username": username}).Info("account registered")
}

func (Recorder) RegistrationFailed(reason error) {
	registrations.WithLabelValues("failure").Inc()
	logrus.WithError(reason).Debug("registration rejected")
}

func (Recorder) LoginSucceeded(id int) {
	logins.WithLabelValues("success").Inc()
	logrus.WithField("account_id", id).Debug("login succeeded")
}

func (Recorder) LoginFailed() {
	logins.WithLabelValues("failure").Inc()
}

func (Recorder) MessagePosted(id, postedBy int) {
	messages.WithLabelValues("post").Inc()
	logrus.WithFields(logrus.Fields{"message_id": id, "posted_by": postedBy}).Debug("message posted")
}

func (Recorder) MessageUpdated(id int) {
	messages.WithLabelValues("update").Inc()
}

func (Recorder) MessageDeleted(id int) {
	messages.WithLabelValues("delete").Inc()
}
