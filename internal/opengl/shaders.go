package opengl

// Shader sources are built-in string constants rather than files loaded
// from disk: original_source's renderer.py embedded its GLSL as Python
// string literals too (no .glsl/.comp files survive in the original
// source tree), so this keeps the same "shader text lives next to the
// program that compiles it" arrangement, just in a .go file instead of a
// .py one. compileShader trims a leading BOM and leading whitespace before
// the `#version` line, since stripping a stray BOM or leading
// blank lines there keeps driver shader compilers happy even though these
// sources never carry a BOM themselves.

// computeShaderSrc casts one primary ray per output pixel, integrates its
// Schwarzschild null geodesic with the same RK4 stepper and derivative
// formulas as physics/geodesic.go, and resolves the horizon > occluder >
// disk > escape termination priority per invocation, writing image unit 0
// as RGBA8.
const computeShaderSrc = `
#version 430 core
layout(local_size_x = 16, local_size_y = 16) in;
layout(rgba8, binding = 0) uniform writeonly image2D outImage;

layout(std140, binding = 1) uniform CameraBlock {
    vec4 camPosition;
    vec4 camRight;
    vec4 camUp;
    vec4 camForward;
    float tanHalfFov;
    float aspect;
    float moving;
};

layout(std140, binding = 2) uniform DiskBlock {
    vec4 diskParams; // r1, r2, num, thk
};

#define MAX_OBJECTS 16
layout(std140, binding = 3) uniform ObjectsBlock {
    int objectCount;
    vec4 posRadius[MAX_OBJECTS];
    vec4 objColor[MAX_OBJECTS];
    vec4 objMass[MAX_OBJECTS]; // .x used, rest padding
};

uniform float uRs;         // primary black hole Schwarzschild radius
uniform float uEscapeR;    // escape radius
uniform int   uStepBudget; // max RK4 steps per ray (termination v)
uniform vec3  uHorizonColor;
uniform vec3  uBackgroundColor;

// State is the six-vector (r, theta, phi, dr, dtheta, dphi) carried
// through RK4, identical in shape to physics.geodesicState.
struct State {
    float r, theta, phi;
    float dr, dtheta, dphi;
};

float metricFactor(float r) {
    return 1.0 - uRs / r;
}

State derivative(State s, float e) {
    float sinTheta = sin(s.theta);
    float cosTheta = cos(s.theta);
    cosTheta = clamp(cosTheta, -0.999999999999, 0.999999999999);
    if (abs(sinTheta) < 1e-12) {
        sinTheta = sign(sinTheta) * 1e-12;
        if (sinTheta == 0.0) sinTheta = 1e-12;
    }

    float f = metricFactor(s.r);
    float dtDlam = e / f;

    State out_;
    out_.r = s.dr;
    out_.theta = s.dtheta;
    out_.phi = s.dphi;
    out_.dr = -(uRs / (2.0 * s.r * s.r)) * f * dtDlam * dtDlam
            + (uRs / (2.0 * s.r * s.r * f)) * s.dr * s.dr
            + s.r * (s.dtheta * s.dtheta + sinTheta * sinTheta * s.dphi * s.dphi);
    out_.dtheta = -(2.0 / s.r) * s.dr * s.dtheta + sinTheta * cosTheta * s.dphi * s.dphi;
    out_.dphi = -(2.0 / s.r) * s.dr * s.dphi - 2.0 * (cosTheta / sinTheta) * s.dtheta * s.dphi;
    return out_;
}

State scaleAdd(State s, State k, float scale) {
    State out_;
    out_.r = s.r + k.r * scale;
    out_.theta = s.theta + k.theta * scale;
    out_.phi = s.phi + k.phi * scale;
    out_.dr = s.dr + k.dr * scale;
    out_.dtheta = s.dtheta + k.dtheta * scale;
    out_.dphi = s.dphi + k.dphi * scale;
    return out_;
}

vec3 sphericalToCartesian(float r, float theta, float phi) {
    float st = sin(theta);
    return vec3(r * st * cos(phi), r * st * sin(phi), r * cos(theta));
}

// diskColorAt mirrors physics.diskColorAt's banded/spiral pattern.
vec3 diskColorAt(float x, float z, float rho, float num) {
    float angle = atan(z, x);
    float band = 0.5 + 0.5 * sin(num * angle + rho * 1e-9);
    float falloff = 1.0 / (1.0 + rho * 1e-11);
    vec3 warm = vec3(1.0, 0.55, 0.2);
    vec3 cool = vec3(0.9, 0.75, 1.0);
    return clamp((warm * band + cool * (1.0 - band)) * falloff, 0.0, 1.0);
}

bool segmentSphereHit(vec3 prev, vec3 cur, vec3 center, float radius) {
    vec3 d = cur - prev;
    vec3 f = prev - center;
    float a = dot(d, d);
    if (a == 0.0) {
        return dot(f, f) <= radius * radius;
    }
    float b = 2.0 * dot(f, d);
    float c = dot(f, f) - radius * radius;
    float disc = b * b - 4.0 * a * c;
    if (disc < 0.0) return false;
    disc = sqrt(disc);
    float t1 = (-b - disc) / (2.0 * a);
    float t2 = (-b + disc) / (2.0 * a);
    return (t1 >= 0.0 && t1 <= 1.0) || (t2 >= 0.0 && t2 <= 1.0) || (t1 < 0.0 && t2 > 1.0);
}

void main() {
    ivec2 pix = ivec2(gl_GlobalInvocationID.xy);
    ivec2 size = imageSize(outImage);
    if (pix.x >= size.x || pix.y >= size.y) return;

    vec2 ndc = (vec2(pix) + 0.5) / vec2(size) * 2.0 - 1.0;
    vec3 dir = normalize(camForward.xyz
        + camRight.xyz * (ndc.x * tanHalfFov * aspect)
        + camUp.xyz * (ndc.y * tanHalfFov));

    vec3 p = camPosition.xyz;

    float r = length(p);
    float theta = acos(p.z / r);
    float phi = atan(p.y, p.x);
    // NOTE: CPU oracle uses acos(p.z/r)/atan2(p.y,p.x) against a Z-up spherical
    // convention (physics/geodesic.go); the GPU camera basis is Y-up, so the
    // ray's initial spherical state is derived in the same Z-up convention by
    // treating (x,y,z) consistently with physics.NewRay's formulas below.
    float sinTheta = sin(theta);
    float cosTheta = cos(theta);
    float sinPhi = sin(phi);
    float cosPhi = cos(phi);

    float dr = sinTheta * cosPhi * dir.x + sinTheta * sinPhi * dir.y + cosTheta * dir.z;
    float dtheta = (cosTheta * cosPhi * dir.x + cosTheta * sinPhi * dir.y - sinTheta * dir.z) / r;
    float dphi = (-sinPhi * dir.x + cosPhi * dir.y) / (r * sinTheta);

    float f0 = metricFactor(r);
    float dtDlam0 = sqrt((dr * dr / f0 + r * r * (dtheta * dtheta + sinTheta * sinTheta * dphi * dphi)) / f0);
    float e = f0 * dtDlam0;

    State s = State(r, theta, phi, dr, dtheta, dphi);
    vec3 cur = sphericalToCartesian(s.r, s.theta, s.phi);

    vec3 outColor = uBackgroundColor;
    bool resolved = false;

    for (int step = 0; step < uStepBudget && !resolved; step++) {
        float dlam = s.r / 100.0;
        vec3 prev = cur;

        State k1 = derivative(s, e);
        State k2 = derivative(scaleAdd(s, k1, dlam * 0.5), e);
        State k3 = derivative(scaleAdd(s, k2, dlam * 0.5), e);
        State k4 = derivative(scaleAdd(s, k3, dlam), e);

        s.r      += (dlam / 6.0) * (k1.r + 2.0*k2.r + 2.0*k3.r + k4.r);
        s.theta  += (dlam / 6.0) * (k1.theta + 2.0*k2.theta + 2.0*k3.theta + k4.theta);
        s.phi    += (dlam / 6.0) * (k1.phi + 2.0*k2.phi + 2.0*k3.phi + k4.phi);
        s.dr     += (dlam / 6.0) * (k1.dr + 2.0*k2.dr + 2.0*k3.dr + k4.dr);
        s.dtheta += (dlam / 6.0) * (k1.dtheta + 2.0*k2.dtheta + 2.0*k3.dtheta + k4.dtheta);
        s.dphi   += (dlam / 6.0) * (k1.dphi + 2.0*k2.dphi + 2.0*k3.dphi + k4.dphi);

        cur = sphericalToCartesian(s.r, s.theta, s.phi);

        // (i) horizon
        if (s.r <= uRs) {
            outColor = uHorizonColor;
            resolved = true;
            break;
        }

        // (ii) occluders
        for (int i = 0; i < objectCount; i++) {
            vec3 center = posRadius[i].xyz;
            float radius = posRadius[i].w;
            if (segmentSphereHit(prev, cur, center, radius)) {
                outColor = objColor[i].rgb;
                resolved = true;
                break;
            }
        }
        if (resolved) break;

        // (iii) disk
        float halfThk = diskParams.w * 0.5;
        bool crossed = (prev.y > 0.0) != (cur.y > 0.0);
        bool within = abs(prev.y) <= halfThk && abs(cur.y) <= halfThk;
        if (crossed || within) {
            float t = 0.5;
            if (cur.y != prev.y) {
                t = (0.0 - prev.y) / (cur.y - prev.y);
                if (t < 0.0 || t > 1.0) t = 0.5;
            }
            float hx = prev.x + t * (cur.x - prev.x);
            float hz = prev.z + t * (cur.z - prev.z);
            float rho = length(vec2(hx, hz));
            if (rho >= diskParams.x && rho <= diskParams.y) {
                outColor = diskColorAt(hx, hz, rho, diskParams.z);
                resolved = true;
                break;
            }
        }

        // (iv) escape
        if (s.r > uEscapeR) {
            outColor = uBackgroundColor;
            resolved = true;
            break;
        }
    }

    imageStore(outImage, pix, vec4(outColor, 1.0));
}
` + "\x00"

// presentVertSrc draws a fullscreen triangle using gl_VertexID, avoiding a
// dedicated quad VBO — the same trick used for a post-process blit pass.
const presentVertSrc = `
#version 430 core
out vec2 fragUV;

void main() {
    vec2 pos = vec2((gl_VertexID << 1) & 2, gl_VertexID & 2);
    fragUV = pos;
    gl_Position = vec4(pos * 2.0 - 1.0, 0.0, 1.0);
}
` + "\x00"

// presentFragSrc samples the compute shader's output image.
const presentFragSrc = `
#version 430 core
in vec2 fragUV;
out vec4 outColor;

uniform sampler2D computeTex;

void main() {
    outColor = texture(computeTex, fragUV);
}
` + "\x00"

// gridVertSrc transforms world-space curvature-grid line vertices by a
// view-projection matrix.
const gridVertSrc = `
#version 430 core
layout(location = 0) in vec3 inPos;
layout(location = 1) in vec4 inColor;

uniform mat4 viewProj;

out vec4 fragColor;

void main() {
    gl_Position = viewProj * vec4(inPos, 1.0);
    fragColor = inColor;
}
` + "\x00"

// gridFragSrc draws the translucent grid lines.
const gridFragSrc = `
#version 430 core
in vec4 fragColor;
out vec4 outColor;

void main() {
    outColor = fragColor;
}
` + "\x00"
