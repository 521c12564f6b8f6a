package main

import "github.com/spf13/pflag"

type optional[T any] struct {
	val     T
	isEmpty bool
}

func (o optional[T]) IsEmpty() bool {
	return o.isEmpty
}

func (o optional[T]) Get() T {
	return o.val
}

func Optional[T any](val T) optional[T] {
	return optional[T]{
		val: val,
	}
}

func EmptyOptional[T any]() optional[T] {
	return optional[T]{
		isEmpty: true,
	}
}

// changedFlag is Optional(get()) when the user set the flag, empty otherwise.
func changedFlag[T any](flags *pflag.FlagSet, name string, get func() T) optional[T] {
	if !flags.Changed(name) {
		return EmptyOptional[T]()
	}
	return Optional(get())
}
