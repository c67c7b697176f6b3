/*
Package vkwave is a client for the VK API and bot event dispatch.

The module is split by concern:

  - client: request contexts, their lifecycle signals and the HTTP API client
  - client/observe: Prometheus metrics and request records published to NATS
  - events: bot and user long poll events and their classification
  - dispatch: routing handler results back to the API by event kind and result type

# Basic Usage

Every API call goes through a RequestContext. The context runs the
BEFORE_REQUEST callbacks, calls the transport, routes failures to the
exception handlers and finally runs the AFTER_REQUEST callbacks:

	api := client.NewHTTPClient(client.WithToken(os.Getenv("VK_TOKEN")))
	defer api.Close()

	rc := api.CreateRequest("users.get", client.Params{"user_ids": "1"})
	rc.MustSetExceptionHandler(client.ErrConnection, func(ctx context.Context, rc *client.RequestContext) {
		rc.Result().SetExceptionData(map[string]any{"retry": true})
	})
	rc.SendRequest(ctx)

	switch rc.Result().State() {
	case client.Success:
		fmt.Println(rc.Result().Data().Get("0.first_name"))
	case client.HandledException:
		// the handler ran, its data is in rc.Result().ExceptionData()
	case client.UnhandledException:
		return rc.Result().Exception()
	}

Handler results are turned into API calls by a ResultCaster:

	caster := dispatch.NewResultCaster(&dispatch.APIMessenger{API: api})
	err := caster.Cast(ctx, "pong", event)

The vkcall command in cmd/vkcall wires all of this together for one-off calls.
*/
package vkwave
