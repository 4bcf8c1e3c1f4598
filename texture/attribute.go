// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package texture

import "github.com/gazed/pathtrace/vec"

// Attribute is a tagged union: either a constant color/scalar (packed into
// a V3) or a reference to a bound LDR texture, constant XOR texture,
// never both.
type Attribute struct {
	Constant vec.V3
	Texture  *LDR // nil means "use Constant"
}

// Eval returns the attribute's value at the given UV: the sampled texture
// color if one is bound, otherwise the constant.
func (a Attribute) Eval(uv vec.V2) vec.V3 {
	if a.Texture == nil {
		return a.Constant
	}
	return a.Texture.Sample(uv)
}

// ConstAttribute builds an Attribute with no bound texture.
func ConstAttribute(v vec.V3) Attribute { return Attribute{Constant: v} }

// TexAttribute builds an Attribute that samples the given texture.
func TexAttribute(t *LDR) Attribute { return Attribute{Texture: t} }
