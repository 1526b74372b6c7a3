package primitives

import (
	rl "github.com/gen2brain/raylib-go/raylib"
)

// Kind names a cached mesh.
type Kind int

const (
	// Plane is a 1x1 quad in XZ with its normal on +Y.
	Plane Kind = iota
	// Cube is a unit cube centered at the origin.
	Cube
)

// Transform places a unit mesh: scaled by Size, pitched about X, turned about Y by Yaw,
// then moved to Position. Angles are radians.
type Transform struct {
	Position rl.Vector3
	Size     rl.Vector3
	Pitch    float32
	Yaw      float32
}

// Matrix returns the model matrix for t. Zero size components count as 1.
func (t Transform) Matrix() rl.Matrix {
	sx, sy, sz := t.Size.X, t.Size.Y, t.Size.Z
	if sx == 0 {
		sx = 1
	}
	if sy == 0 {
		sy = 1
	}
	if sz == 0 {
		sz = 1
	}
	m := rl.MatrixScale(sx, sy, sz)
	if t.Pitch != 0 {
		m = rl.MatrixMultiply(m, rl.MatrixRotateX(t.Pitch))
	}
	if t.Yaw != 0 {
		m = rl.MatrixMultiply(m, rl.MatrixRotateY(t.Yaw))
	}
	return rl.MatrixMultiply(m, rl.MatrixTranslate(t.Position.X, t.Position.Y, t.Position.Z))
}

// cached holds mesh and material for a primitive type. Created lazily on first Draw.
// texturedMtl is used when drawing with an albedo texture (same mesh, different material).
type cached struct {
	mesh        rl.Mesh
	mtl         rl.Material
	texturedMtl rl.Material
}

// Registry maps primitive kinds to mesh+material. Meshes are created on first use
// so that GPU resources are allocated after the window/OpenGL context exists.
type Registry struct {
	cache    map[Kind]*cached
	viewPos  [3]float32 // camera position, set each frame for lighting
	lightDir [3]float32 // direction to light (normalized), set each frame
	emissive float32
}

// NewRegistry returns a registry with no primitives.
func NewRegistry() *Registry {
	return &Registry{
		cache:    make(map[Kind]*cached),
		lightDir: [3]float32{0.5, 1, 0.5},
	}
}

// SetView sets camera position and direction-to-light for this frame. Call once per frame
// before drawing so lit primitives get correct shading.
func (r *Registry) SetView(viewPos, lightDir [3]float32) {
	r.viewPos = viewPos
	r.lightDir = lightDir
}

// SetEmissive sets how much of the surface color is added unlit to the following draws.
func (r *Registry) SetEmissive(e float32) {
	r.emissive = e
}

// ensure creates the mesh and both materials for k if not yet cached.
func (r *Registry) ensure(k Kind) *cached {
	if c, ok := r.cache[k]; ok {
		return c
	}
	var mesh rl.Mesh
	switch k {
	case Cube:
		mesh = rl.GenMeshCube(1, 1, 1)
	default:
		mesh = rl.GenMeshPlane(1, 1, 1, 1)
	}
	mtl := rl.LoadMaterialDefault()
	if shader := rl.LoadShaderFromMemory(litVS, litFS); rl.IsShaderValid(shader) {
		mtl.Shader = shader
	}
	texturedMtl := rl.LoadMaterialDefault()
	if shader := rl.LoadShaderFromMemory(litVS, litTexturedFS); rl.IsShaderValid(shader) {
		texturedMtl.Shader = shader
	}
	c := &cached{mesh: mesh, mtl: mtl, texturedMtl: texturedMtl}
	r.cache[k] = c
	return c
}

const (
	litVS = `#version 330
in vec3 vertexPosition;
in vec2 vertexTexCoord;
in vec3 vertexNormal;
uniform mat4 matProjection;
uniform mat4 matView;
uniform mat4 matModel;
out vec3 fragPosition;
out vec2 fragTexCoord;
out vec3 fragNormal;
void main() {
  vec4 worldPos = matModel * vec4(vertexPosition, 1.0);
  fragPosition = worldPos.xyz;
  fragTexCoord = vertexTexCoord;
  fragNormal = mat3(matModel) * vertexNormal;
  gl_Position = matProjection * matView * worldPos;
}
`
	litFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
uniform float emissive;
out vec4 finalColor;
void main() {
  vec4 tint = colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * tint.rgb;
  vec3 H = normalize(L + V);
  float NdotH = max(dot(N, H), 0.0);
  float spec = pow(NdotH, specularPower) * specularStrength;
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular + tint.rgb * emissive, tint.a);
}
`
	// litTexturedFS: same as litFS but tint from albedo texture * colDiffuse (for textured primitives).
	litTexturedFS = `#version 330
in vec3 fragPosition;
in vec2 fragTexCoord;
in vec3 fragNormal;
uniform vec4 colDiffuse;
uniform vec3 viewPos;
uniform vec3 lightDir;
uniform vec4 ambient;
uniform vec3 lightColor;
uniform float lightIntensity;
uniform float specularPower;
uniform float specularStrength;
uniform float emissive;
uniform sampler2D albedoMap;
out vec4 finalColor;
void main() {
  vec4 texColor = texture(albedoMap, fragTexCoord);
  vec4 tint = texColor * colDiffuse;
  vec3 N = normalize(fragNormal);
  vec3 L = normalize(lightDir);
  vec3 V = normalize(viewPos - fragPosition);
  float NdotL = max(dot(N, L), 0.0);
  vec3 diffuse = tint.rgb * NdotL * lightColor * lightIntensity;
  vec3 amb = ambient.rgb * tint.rgb;
  vec3 H = normalize(L + V);
  float NdotH = max(dot(N, H), 0.0);
  float spec = pow(NdotH, specularPower) * specularStrength;
  vec3 specular = lightColor * spec * (NdotL > 0.0 ? 1.0 : 0.0);
  finalColor = vec4(amb + diffuse + specular + tint.rgb * emissive, tint.a);
}
`
)

// defaultAmbient is the room's ambient light at half strength.
var defaultAmbient = [4]float32{0.5, 0.5, 0.5, 1.0}

// defaultLightColor is a soft warm-white for the directional light.
var defaultLightColor = [3]float32{1.0, 0.98, 0.95}

// defaultLightIntensity scales the directional diffuse (0–1).
const defaultLightIntensity = float32(0.75)

// defaultSpecularPower controls highlight tightness (higher = smaller, sharper highlight).
const defaultSpecularPower = float32(48.0)

// defaultSpecularStrength scales specular contribution (0–1).
const defaultSpecularStrength = float32(0.15)

// setLitShaderUniforms sets viewPos, lightDir, ambient, light color/intensity, and specular on the given shader (cgo-safe: local arrays).
func (r *Registry) setLitShaderUniforms(shader rl.Shader) {
	if !rl.IsShaderValid(shader) {
		return
	}
	viewPos := [3]float32{r.viewPos[0], r.viewPos[1], r.viewPos[2]}
	lightDir := [3]float32{r.lightDir[0], r.lightDir[1], r.lightDir[2]}
	amb := [4]float32{defaultAmbient[0], defaultAmbient[1], defaultAmbient[2], defaultAmbient[3]}
	lightColor := [3]float32{defaultLightColor[0], defaultLightColor[1], defaultLightColor[2]}
	if loc := rl.GetShaderLocation(shader, "viewPos"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, viewPos[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightDir"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightDir[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "ambient"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, amb[:], rl.ShaderUniformVec4, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightColor"); loc >= 0 {
		rl.SetShaderValueV(shader, loc, lightColor[:], rl.ShaderUniformVec3, 1)
	}
	if loc := rl.GetShaderLocation(shader, "lightIntensity"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultLightIntensity}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularPower"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultSpecularPower}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "specularStrength"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{defaultSpecularStrength}, rl.ShaderUniformFloat)
	}
	if loc := rl.GetShaderLocation(shader, "emissive"); loc >= 0 {
		rl.SetShaderValue(shader, loc, []float32{r.emissive}, rl.ShaderUniformFloat)
	}
}

// Draw draws one instance of k placed by xf and tinted by tint.
// Must be called between BeginMode3D and EndMode3D, after SetView.
func (r *Registry) Draw(k Kind, xf Transform, tint rl.Color) {
	c := r.ensure(k)
	if albedo := c.mtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = tint
	}
	r.setLitShaderUniforms(c.mtl.Shader)
	rl.DrawMesh(c.mesh, c.mtl, xf.Matrix())
}

// DrawTextured draws k with tex as albedo, multiplied by tint. An invalid texture falls back
// to Draw with the tint alone.
func (r *Registry) DrawTextured(k Kind, xf Transform, tint rl.Color, tex rl.Texture2D) {
	if !rl.IsTextureValid(tex) {
		r.Draw(k, xf, tint)
		return
	}
	c := r.ensure(k)
	rl.SetMaterialTexture(&c.texturedMtl, rl.MapAlbedo, tex)
	if albedo := c.texturedMtl.GetMap(rl.MapAlbedo); albedo != nil {
		albedo.Color = tint
	}
	r.setLitShaderUniforms(c.texturedMtl.Shader)
	rl.DrawMesh(c.mesh, c.texturedMtl, xf.Matrix())
}

// Unload releases the GPU resources of every cached primitive.
func (r *Registry) Unload() {
	for k, c := range r.cache {
		rl.UnloadMesh(&c.mesh)
		rl.UnloadShader(c.mtl.Shader)
		rl.UnloadShader(c.texturedMtl.Shader)
		delete(r.cache, k)
	}
}
