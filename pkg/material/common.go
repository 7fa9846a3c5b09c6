package material

// shadowEpsilon offsets a scattered ray's origin along the shading normal to
// avoid immediately re-intersecting the surface it just left.
const shadowEpsilon = 1e-4
