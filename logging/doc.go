/*
Package logging provides the go-kit logger construction used throughout this
module.  Components accept a log.Logger and treat it as a best-effort
diagnostic sink; logging is never part of any correctness guarantee.
*/
package logging
