package render

// Mat4 is a 4×4 float32 matrix in column-major order: element (col, row)
// is stored at index col*4+row. This is the memory layout WGSL expects for
// mat4x4<f32>, so the array can be uploaded as is.
type Mat4 [16]float32

// Identity4 returns the identity matrix.
func Identity4() Mat4 {
	return Mat4{
		1, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 1, 0,
		0, 0, 0, 1,
	}
}

// Ortho returns an orthographic projection mapping the box
// [left,right]×[bottom,top]×[near,far] to [-1,1] on each axis.
func Ortho(left, right, bottom, top, near, far float32) Mat4 {
	m := Identity4()
	m[0*4+0] = 2 / (right - left)
	m[1*4+1] = 2 / (top - bottom)
	m[2*4+2] = 2 / (far - near)

	m[3*4+0] = -(right + left) / (right - left)
	m[3*4+1] = -(top + bottom) / (top - bottom)
	m[3*4+2] = -(far + near) / (far - near)
	return m
}

// ScreenProjection maps window pixels, origin top-left and Y growing down,
// to normalized device coordinates. width and height must be positive.
func ScreenProjection(width, height int) Mat4 {
	return Ortho(0, float32(width), float32(height), 0, -1, 1)
}

// At returns element (col, row).
func (m Mat4) At(col, row int) float32 {
	return m[col*4+row]
}

// Transform returns m × (x, y, z, w).
func (m Mat4) Transform(x, y, z, w float32) [4]float32 {
	v := [4]float32{x, y, z, w}
	var out [4]float32
	for row := 0; row < 4; row++ {
		var sum float32
		for col := 0; col < 4; col++ {
			sum += m[col*4+row] * v[col]
		}
		out[row] = sum
	}
	return out
}
