// Package client supervises calls to the VK API.
//
// Every call is represented by a RequestContext. A context carries the method
// name, the parameters and the transport callback, and moves from NotSent to
// Sent exactly once when SendRequest runs. Around the transport call it fires
// three signals, BeforeRequest, OnException and AfterRequest, whose callbacks
// run sequentially in registration order.
//
// Transport errors are never returned. They are recorded in the ResultContext
// and classified: when an exception handler was installed for the error kind
// the outcome is HandledException, otherwise UnhandledException. Error kinds
// must be declared when the context is created, installing a handler for any
// other kind fails with ErrUnallowedException.
//
//	c := client.NewHTTPClient(client.WithToken(token))
//	rc := c.CreateRequest("users.get", client.Params{"user_ids": 1})
//	rc.MustSetExceptionHandler(client.ErrAPI, func(ctx context.Context, rc *client.RequestContext) {
//	    var apiErr *client.APIError
//	    if errors.As(rc.Result().Exception(), &apiErr) {
//	        rc.Result().SetExceptionData(map[string]any{"code": apiErr.Code})
//	    }
//	})
//	rc.SendRequest(ctx)
//
//	switch rc.Result().State() {
//	case client.Success:
//	    fmt.Println(rc.Result().Data())
//	case client.HandledException, client.UnhandledException:
//	    fmt.Println(rc.Result().Exception())
//	}
package client
