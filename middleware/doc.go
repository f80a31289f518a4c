// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package middleware holds the HTTP plumbing shared by every handler.

# Request Logging

WithLogging wraps a handler and emits one "request completed" line with
method, path, status, bytes and duration_ms. Status 4xx logs at warn and
5xx at error:

	mux.HandleFunc("POST /projects", middleware.WithLogging(h.CreateProject))

# JSON Bodies

ParseJSONBody reads at most MaxBodyBytes and exactly one JSON value.
Failures wrap ErrBodyTooLarge or ErrInvalidJSON; BodyErrorResponse turns
them into 413 or 400:

	var req models.SubmitResponseRequest
	if err := middleware.ParseJSONBody(w, r, &req); err != nil {
		middleware.BodyErrorResponse(w, err)
		return
	}

JSONResponse and ErrorResponse write the response side, errors as
{"error": <status text>, "message": <detail>}.

# CORS

CORS reflects the caller's Origin and answers preflight requests with
204 before the router sees them.

# Client IP

GetClientIP picks the participant address that auth.HashIP stores with
each response.
*/
package middleware
