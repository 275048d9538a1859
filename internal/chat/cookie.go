package chat

// ParseCookie pulls a single named value out of a raw Cookie header without
// a general cookie parser. It tolerates irregular spacing and a missing '=':
//
//	" bar=foo; domain_sid =  abc123  ;" with name "domain_sid" => "abc123"
//
// The scan finds the first occurrence of name, skips any '=' and space
// characters after it, then accumulates until a space or ';' follows a
// captured character. An absent name yields "". Callers must treat "" as
// "no cookie", never as a valid empty session ID.
func ParseCookie(cookie, name string) string {
	// Scanning start index, first position after the name. Defaults past the
	// end so a missing name produces an empty value.
	index := len(cookie)

	for i := 0; i+len(name) <= len(cookie); i++ {
		if cookie[i:i+len(name)] == name {
			index = i + len(name)
			break
		}
	}

	value := ""
	for i := index; i < len(cookie); i++ {
		if value != "" && (cookie[i] == ' ' || cookie[i] == ';') {
			break
		}

		if cookie[i] == '=' || cookie[i] == ' ' {
			continue
		}

		value += string(cookie[i])
	}

	return value
}
