// Package hdrmock provides gomock mocks of the header field source and sink.
package hdrmock

//go:generate go tool mockgen -package hdrmock -destination mock.go github.com/ghettovoice/httphdr/header Source,Sink
