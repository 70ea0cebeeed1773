package out

import (
	"context"
	"fmt"
	"sync"

	"github.com/gen2brain/beeep"
	"go.uber.org/zap"

	"lofi/internal/modules/timer/domain"
	apperrors "lofi/internal/platform/errors"
)

// PermissionFromConfig maps the config tri-state onto a permission.
func PermissionFromConfig(enabled *bool) domain.Permission {
	switch {
	case enabled == nil:
		return domain.PermissionDefault
	case *enabled:
		return domain.PermissionGranted
	default:
		return domain.PermissionDenied
	}
}

// BeeepNotifier posts desktop notifications through the platform's native
// mechanism.
type BeeepNotifier struct {
	logger   *zap.Logger
	onDecide func(domain.Permission)
	send     func(title, body string) error

	mu         sync.RWMutex
	permission domain.Permission
}

// NewBeeepNotifier starts from the configured permission. onDecide is called
// once when an undecided permission gets resolved so the caller can persist
// the answer.
func NewBeeepNotifier(enabled *bool, logger *zap.Logger, onDecide func(domain.Permission)) *BeeepNotifier {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &BeeepNotifier{
		logger:     logger,
		onDecide:   onDecide,
		send:       func(title, body string) error { return beeep.Notify(title, body, "") },
		permission: PermissionFromConfig(enabled),
	}
}

func (n *BeeepNotifier) Permission() domain.Permission {
	n.mu.RLock()
	defer n.mu.RUnlock()
	return n.permission
}

// SetEnabled applies a reloaded config value.
func (n *BeeepNotifier) SetEnabled(enabled *bool) {
	n.mu.Lock()
	n.permission = PermissionFromConfig(enabled)
	n.mu.Unlock()
	n.logger.Debug("notification permission updated", zap.String("permission", string(n.Permission())))
}

// RequestPermission resolves an undecided permission. A terminal session has
// no consent prompt, so launching the app is taken as the grant; an explicit
// denial in config is never overridden.
func (n *BeeepNotifier) RequestPermission(ctx context.Context) domain.Permission {
	n.mu.Lock()
	if n.permission != domain.PermissionDefault {
		p := n.permission
		n.mu.Unlock()
		return p
	}
	n.permission = domain.PermissionGranted
	n.mu.Unlock()
	n.logger.Info("notification permission granted")
	if n.onDecide != nil {
		n.onDecide(domain.PermissionGranted)
	}
	return domain.PermissionGranted
}

func (n *BeeepNotifier) Notify(ctx context.Context, title, body string) error {
	if n.Permission() != domain.PermissionGranted {
		return apperrors.ErrNotificationDenied
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := n.send(title, body); err != nil {
		return fmt.Errorf("post notification: %w", err)
	}
	return nil
}
