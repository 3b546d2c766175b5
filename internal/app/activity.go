package app

import (
	"context"
	"log"

	"blogapi/internal/model"
)

const (
	ActionUserRegistered = "user.registered"
	ActionUserUpdated    = "user.updated"
	ActionUserDeleted    = "user.deleted"
	ActionPostCreated    = "post.created"
	ActionPostUpdated    = "post.updated"
	ActionPostDeleted    = "post.deleted"
	ActionLogin          = "auth.login"
	ActionLogout         = "auth.logout"
)

type ActivityPublisher interface {
	Publish(ctx context.Context, activity model.Activity) error
}

// publishActivity enqueues an audit event. The trail is best-effort: a broker
// failure must never fail the request that triggered it.
func publishActivity(ctx context.Context, pub ActivityPublisher, actorID uint, action, resource string, resourceID uint) {
	if pub == nil {
		return
	}
	activity := model.Activity{
		ActorID:    actorID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
	}
	if err := pub.Publish(ctx, activity); err != nil {
		log.Printf("publish activity %s failed: %v", action, err)
	}
}
