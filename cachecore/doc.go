// Package cachecore defines the cache capability contract shared by the
// base stores and policy decorators in github.com/goforj/txcache. It exists
// so alternative backends can implement the contract without importing the
// decorator implementations.
package cachecore
