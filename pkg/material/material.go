package material

import "fmt"

// Material holds the Phong coefficients and the secondary-ray weights of a surface
type Material struct {
	KAmbient        float64 // Ambient reflectance
	KDiffuse        float64 // Diffuse reflectance
	KSpecular       float64 // Specular reflectance
	Shininess       float64 // Phong exponent
	Reflection      float64 // Weight of the mirror-reflected ray
	Transparency    float64 // Weight of the refracted ray
	RefractiveIndex float64 // Index of refraction behind the surface
}

// IsReflective reports whether reflected rays contribute
func (m Material) IsReflective() bool {
	return m.Reflection > 0
}

// IsTransparent reports whether refracted rays contribute
func (m Material) IsTransparent() bool {
	return m.Transparency > 0
}

// Validate rejects coefficients no shading model can use
func (m Material) Validate() error {
	coefficients := []struct {
		name  string
		value float64
	}{
		{"kAmbient", m.KAmbient},
		{"kDiffuse", m.KDiffuse},
		{"kSpecular", m.KSpecular},
		{"shininess", m.Shininess},
		{"reflection", m.Reflection},
		{"transparency", m.Transparency},
	}
	for _, c := range coefficients {
		if c.value < 0 {
			return fmt.Errorf("%s must not be negative, got %g", c.name, c.value)
		}
	}
	if m.IsTransparent() && m.RefractiveIndex <= 0 {
		return fmt.Errorf("transparent material needs a positive refractive index, got %g", m.RefractiveIndex)
	}
	return nil
}

// Default returns a plastic-like material with a soft highlight
func Default() Material {
	return Material{
		KAmbient:        0.2,
		KDiffuse:        0.7,
		KSpecular:       0.3,
		Shininess:       20,
		RefractiveIndex: 1.0,
	}
}

// Matte returns a purely diffuse material
func Matte() Material {
	return Material{
		KAmbient:        0.2,
		KDiffuse:        0.8,
		RefractiveIndex: 1.0,
	}
}

// Mirror returns a mostly reflective material with a sharp highlight
func Mirror(reflection float64) Material {
	return Material{
		KAmbient:        0.05,
		KDiffuse:        0.1,
		KSpecular:       0.8,
		Shininess:       200,
		Reflection:      reflection,
		RefractiveIndex: 1.0,
	}
}

// Glass returns a transparent material with the given index of refraction
func Glass(refractiveIndex float64) Material {
	return Material{
		KAmbient:        0.02,
		KDiffuse:        0.05,
		KSpecular:       0.9,
		Shininess:       300,
		Reflection:      0.1,
		Transparency:    0.85,
		RefractiveIndex: refractiveIndex,
	}
}

// Preset looks up a material by name
func Preset(name string) (Material, bool) {
	switch name {
	case "default", "plastic":
		return Default(), true
	case "matte", "lambertian":
		return Matte(), true
	case "mirror", "metal":
		return Mirror(0.8), true
	case "glass", "dielectric":
		return Glass(1.5), true
	}
	return Material{}, false
}
