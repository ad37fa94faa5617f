// Package logger provides a small factory around log/slog plus typed attribute
// helpers for the identifiers that appear throughout the notification pipeline
// (user, notification, template, channel).
//
// Attribute helpers return an empty slog.Attr for nil values so call sites can
// pass optional identifiers without guarding:
//
//	log.LogAttrs(ctx, slog.LevelInfo, "notification created",
//	    logger.NotificationID(n.ID),
//	    logger.UserID(n.UserID),
//	    logger.Channel("email"),
//	)
package logger
