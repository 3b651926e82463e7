// Package match offers self-describing predicates over stream notifications.
//
// An EventP is a boolean test over a single notification that can also render
// what it expects; the rxtest package uses the description on failure
// messages. Predicates over the payload of a notification are expressed with
// ValueP and lifted with IsValueThat or IsErrorThat.
//
//	match.IsValue("spoon")
//	match.IsValueThat(match.EndsWith("ork"))
//	match.IsErrorContaining[string]("no spoon")
//	match.Or(match.IsCompleted[string](), match.IsError[string]())
package match
