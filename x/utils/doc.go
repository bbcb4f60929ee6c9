/*
Package utils contains the decorators shared by every barter application
stack: panic recovery, logging, metrics, transaction savepoints and tagging
of the results.
*/
package utils
