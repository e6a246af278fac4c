package asset

// DefaultManifest is used when no manifest file is configured
// Sizes are object bounds in world units (x, y, z); blaster z drives the muzzle offset
const DefaultManifest = `
templates:
  - name: blasterG
    kind: blaster
    size: [0.14, 0.22, 0.5]
    glyph: "A"
    color: yellow

  - name: foamBulletB
    kind: projectile
    size: [0.04, 0.04, 0.12]
    glyph: "*"
    color: orange

  - name: targetA
    kind: target
    size: [0.6, 0.9, 0.12]
    glyph: "@"
    color: red
`
