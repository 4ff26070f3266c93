// Package errors provides the structured error type used across the bot.
//
// Errors carry a Code, a message, an optional cause and metadata:
//
//	err := errors.NotFound("spell not found").
//	    WithMeta("entity_type", "spell").
//	    WithMeta("query", q)
//
// Repositories translate driver failures into codes the rest of the bot
// understands. Any failure to reach the compendium store becomes
// Unavailable; a stored row that cannot be mapped becomes MalformedRecord:
//
//	if err := db.PingContext(ctx); err != nil {
//	    return errors.WrapWithCode(err, errors.CodeUnavailable, "compendium store unreachable")
//	}
//
// Command handlers never show raw errors in chat. They log the error and
// reply with UserMessage:
//
//	if err != nil {
//	    logger.Error("lookup failed", zap.Error(err))
//	    reply(errors.UserMessage(err))
//	}
//
// Config and input validation uses the builder:
//
//	vb := errors.NewValidationBuilder()
//	errors.ValidateRequired("name", input.Name, vb)
//	errors.ValidateRange("limit", input.Limit, 1, 25, vb)
//	if err := vb.Build(); err != nil {
//	    return err
//	}
package errors
