// Copyright © 2024 Galvanized Logic Inc.
// Use is governed by a BSD-style license found in the LICENSE file.

package pathtrace

// ConfigError reports a malformed Options value, framebuffer size, or
// render tile, surfaced at DefaultOptions/Begin/NewFramebuffer/Render time
// rather than leaving the object half-initialized.
type ConfigError struct {
	Msg string
}

func (e *ConfigError) Error() string { return "pathtrace: config: " + e.Msg }

// SceneError reports scene-lifecycle misuse or capacity overflow: too
// many objects, too many triangles in one object, or operating on a scene
// before Begin or after End/Destroy.
type SceneError struct {
	Msg string
}

func (e *SceneError) Error() string { return "pathtrace: scene: " + e.Msg }
