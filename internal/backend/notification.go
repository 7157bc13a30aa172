package backend

import (
	"context"
	"net/http"

	"github.com/duccv/bank-web/internal/model"
)

func (c *Client) Notifications(ctx context.Context) ([]model.Notification, error) {
	return fetch[[]model.Notification](ctx, c, get(c.urls.Notification, "/api/notifications"))
}

func (c *Client) UnreadNotifications(ctx context.Context) (int, error) {
	return fetch[int](ctx, c, get(c.urls.Notification, "/api/count-notification"))
}

// MarkNotificationsViewed flags every notification of the user as seen.
func (c *Client) MarkNotificationsViewed(ctx context.Context) error {
	return c.exec(ctx, request{method: http.MethodPut, base: c.urls.Notification, path: "/api/visualisation-notification"})
}

func (c *Client) HideNotification(ctx context.Context, id int64) error {
	return c.exec(ctx, request{
		method: http.MethodPost, base: c.urls.Notification, path: "/api/occult-notification",
		json: model.NotificationIDRequest{NotificationID: id},
	})
}
