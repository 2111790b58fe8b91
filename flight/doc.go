// Package flight supplies taxi routes for simulated flights.
//
// A flight-status document (fetched over HTTP or read from disk) names the
// aircraft, its taxiway and its departure runway. A route table, loaded from
// YAML, maps that selection onto a concrete route and its guidance plan.
//
//	client := flight.NewClient(2 * time.Second)
//	poller := flight.NewPoller(client, cfg.Flights.StatusURL, time.Second, logger)
//	go poller.Run(ctx)
//
//	table, _ := flight.DefaultTable()
//	provider := flight.NewProvider(table, poller, logger)
//	sel := provider.RouteFor("N123AB")
package flight
