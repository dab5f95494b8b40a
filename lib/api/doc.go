// Package api is a thin client for the Etherpad HTTP API.
//
// Every operation is a request to <base>/api/<version>/<operation> that
// carries the API key and answers with the envelope {code, message, data}.
// A code other than 0 becomes one of the typed errors in lib/api/errors:
//
//   - 1: [github.com/ether/etherpad-go-client/lib/api/errors.InvalidParametersError], e.g. "padID does not exist".
//   - 2: [github.com/ether/etherpad-go-client/lib/api/errors.ServerError].
//   - 3: [github.com/ether/etherpad-go-client/lib/api/errors.InvalidMethodError], the operation or version is unknown.
//   - 4: [github.com/ether/etherpad-go-client/lib/api/errors.InvalidAPIKeyError].
//
// Network failures are reported as [github.com/ether/etherpad-go-client/lib/api/errors.TransportError] and bodies
// that are not an envelope as [github.com/ether/etherpad-go-client/lib/api/errors.ProtocolError]. Missing parameters
// and operations newer than the configured API version are rejected before
// any request is sent.
//
// A [Client] is safe for concurrent use.
package api
