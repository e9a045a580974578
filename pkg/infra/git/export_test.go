package git

var RedactForTest = redact
