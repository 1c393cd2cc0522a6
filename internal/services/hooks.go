package services

import (
	"github.com/getsentry/sentry-go"
	"github.com/sirupsen/logrus"
)

// postCommitHooks collects secondary effects (history, activity, fan-out)
// during a workflow operation and runs them after the primary transaction has
// committed. Each hook fails independently: a broken audit trail or
// notification must never undo a committed business transition.
type postCommitHooks struct {
	hooks []postCommitHook
}

type postCommitHook struct {
	name string
	fn   func() error
}

func (h *postCommitHooks) add(name string, fn func() error) {
	h.hooks = append(h.hooks, postCommitHook{name: name, fn: fn})
}

func (h *postCommitHooks) run() {
	for _, hook := range h.hooks {
		runHook(hook)
	}
}

func runHook(hook postCommitHook) {
	defer func() {
		if r := recover(); r != nil {
			logrus.Errorf("Post-commit hook %s panicked: %v", hook.name, r)
			sentry.CaptureMessage("post-commit hook panic: " + hook.name)
		}
	}()
	if err := hook.fn(); err != nil {
		logrus.Warnf("Post-commit hook %s failed: %v", hook.name, err)
		sentry.CaptureException(err)
	}
}
