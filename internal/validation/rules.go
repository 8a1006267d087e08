package validation

// The rules below add a failure to errs and report whether the value passed.
// They cover what struct tags cannot express, such as nullable text whose
// presence depends on another field, and are called from Checker hooks.

// Text requires a non-empty string.
func Text(errs Errors, field, value string) bool {
	if value == "" {
		errs.Add(field, MsgRequiredText)
		return false
	}
	return true
}

// NullableText requires a non-nil, non-empty string.
func NullableText(errs Errors, field string, value *string) bool {
	if value == nil {
		errs.Add(field, MsgRequiredText)
		return false
	}
	return Text(errs, field, *value)
}

// Null requires value to be absent. An empty string is present.
func Null(errs Errors, field string, value *string, msg string) bool {
	if value != nil {
		errs.Add(field, msg)
		return false
	}
	return true
}
