package util

import (
	"github.com/go-sql-driver/mysql"
	"github.com/pingcap/errors"
)

type unretryableErr interface {
	marker()
}

type unretryableWrapper struct {
	error
}

func (unretryableWrapper) marker() {}

func (w unretryableWrapper) Unwrap() error { return w.error }

// WrapUnretryableError wraps an error to make it unretryable.
func WrapUnretryableError(err error) error {
	return unretryableWrapper{err}
}

// IsUnretryableError checks if an error is wrapped by WrapUnretryableError. It
// supports pingcap/errors package.
func IsUnretryableError(err error) bool {
	for err != nil {
		if _, ok := err.(unretryableErr); ok {
			return true
		}
		err = errors.Unwrap(err)
	}
	return false
}

// MySQL error numbers which will not go away by executing the statement again.
const (
	errDBAccessDenied    = 1044
	errAccessDenied      = 1045
	errBadDB             = 1049
	errParse             = 1064
	errTableAccessDenied = 1142
	errNoSuchTable       = 1146
)

// CheckSQLErrorUnretryable checks the MySQL error returned by the result
// database to determine if it is unretryable. For errors we don't have
// confidence, we assume it is retryable so caller will execute the statement
// again.
func CheckSQLErrorUnretryable(err *mysql.MySQLError) bool {
	if err == nil {
		return false
	}
	switch err.Number {
	case errDBAccessDenied, errAccessDenied, errBadDB, errParse,
		errTableAccessDenied, errNoSuchTable:
		return true
	}
	return false
}

// ClassifySQLError marks err as unretryable when it is a MySQL error that
// CheckSQLErrorUnretryable rejects. Other errors are returned unchanged.
func ClassifySQLError(err error) error {
	for cause := err; cause != nil; cause = errors.Unwrap(cause) {
		if merr, ok := cause.(*mysql.MySQLError); ok && CheckSQLErrorUnretryable(merr) {
			return WrapUnretryableError(err)
		}
	}
	return err
}
