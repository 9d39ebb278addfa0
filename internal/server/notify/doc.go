// Package notify turns domain events into channel-agnostic communication
// requests and hands them to a delivery bus.
//
// The Dispatcher never retries and never waits for delivery: a call returns
// as soon as the bus accepts or rejects the request. Rejections surface as
// *common.CommunicationError.
//
// Buses:
//   - RedisBus appends the communication to a Redis stream (XADD).
//   - S3Bus drops the communication as a JSON object into a bucket.
//   - LogBus writes it to the structured log; used in development.
package notify
