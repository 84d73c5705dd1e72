// Package logger builds *slog.Logger instances for namekit binaries.
//
// New applies a list of Option values and returns a logger writing either
// text (development) or JSON (production). The handler is wrapped with a
// decorator that copies request-scoped values, such as the request id, from
// context.Context into every record logged with a *Context method.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithEnvironment(cfg.Env, "namegen"),
//	    logger.WithContextExtractors(requestid.LoggerExtractor()),
//	)
//	log.InfoContext(ctx, "name drawn",
//	    logger.Filters(params),
//	    logger.Candidates(g.Count()),
//	)
//
// Attribute helpers in attr.go keep key names consistent. Error returns an
// empty attribute for a nil error, so it can be passed unconditionally.
package logger
