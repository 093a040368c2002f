package params

import "strconv"

// Text returns the value for key, or def when the key is absent. Absence
// is never an error.
func (c *Collection) Text(key, def string) string {
	if i, ok := c.index[fold(key)]; ok {
		return c.pairs[i].Value
	}
	return def
}

// Int returns the value for key parsed as a decimal integer, or def when
// the key is absent or the value does not parse.
func (c *Collection) Int(key string, def int) int {
	i, ok := c.index[fold(key)]
	if !ok {
		return def
	}
	v, err := strconv.Atoi(c.pairs[i].Value)
	if err != nil {
		return def
	}
	return v
}

// Float returns the value for key parsed as decimal text, or def when the
// key is absent or the value does not parse.
func (c *Collection) Float(key string, def float64) float64 {
	i, ok := c.index[fold(key)]
	if !ok {
		return def
	}
	v, err := strconv.ParseFloat(c.pairs[i].Value, 64)
	if err != nil {
		return def
	}
	return v
}

// Bool returns the value for key read as a boolean token ("T"/"F", case
// insensitive, with "TRUE"/"FALSE" accepted), or def when the key is
// absent or unrecognized.
func (c *Collection) Bool(key string, def bool) bool {
	i, ok := c.index[fold(key)]
	if !ok {
		return def
	}
	switch c.pairs[i].Value {
	case "T", "t", "TRUE", "True", "true":
		return true
	case "F", "f", "FALSE", "False", "false":
		return false
	}
	return def
}

// AddText adds key unless value equals def. Omitting default-valued pairs
// is the format's legacy space-saving rule; the matching getter falls back
// to the same default, so the pair round trips.
func (c *Collection) AddText(key, value, def string) error {
	if value == def {
		return nil
	}
	return c.Add(key, value)
}

// AddInt adds key with a decimal value unless value equals def.
func (c *Collection) AddInt(key string, value, def int) error {
	if value == def {
		return nil
	}
	return c.Add(key, strconv.Itoa(value))
}

// AddFloat adds key with shortest-form decimal text unless value equals
// def. Precision -1 keeps the decimal/binary round trip exact.
func (c *Collection) AddFloat(key string, value, def float64) error {
	if value == def {
		return nil
	}
	return c.Add(key, strconv.FormatFloat(value, 'f', -1, 64))
}

// AddBool adds key as a single-letter token unless value equals def.
func (c *Collection) AddBool(key string, value, def bool) error {
	if value == def {
		return nil
	}
	if value {
		return c.Add(key, "T")
	}
	return c.Add(key, "F")
}
