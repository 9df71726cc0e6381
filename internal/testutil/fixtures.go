package testutil

import "github.com/banshee-data/traclus/internal/traclus/l1geometry"

// SampleTrajectory is a hand-digitised 88-point trace with several loops,
// as flat x,y pairs in pixel units.
var SampleTrajectory = []float64{
	582, 517, 586, 507, 584, 496, 584, 490, 587, 483, 591, 476, 595, 472, 601, 468, 605, 467,
	609, 468, 606, 473, 605, 477, 604, 481, 600, 486, 596, 490, 593, 494, 589, 497, 579, 500,
	563, 503, 556, 507, 547, 510, 534, 514, 525, 518, 517, 521, 510, 522, 505, 525, 500, 529,
	496, 530, 492, 532, 486, 535, 477, 537, 471, 535, 468, 533, 463, 529, 456, 528, 453, 523,
	453, 519, 454, 513, 453, 509, 445, 510, 433, 522, 432, 518, 432, 515, 428, 515, 425, 515,
	423, 516, 422, 515, 424, 512, 431, 510, 433, 509, 434, 510, 428, 510, 423, 507, 420, 506,
	416, 504, 405, 499, 398, 494, 391, 489, 384, 484, 387, 477, 392, 471, 399, 468, 403, 464,
	403, 467, 403, 472, 403, 474, 396, 474, 392, 474, 391, 473, 390, 474, 388, 479, 387, 486,
	381, 493, 376, 502, 367, 510, 360, 513, 352, 515, 342, 516, 330, 517, 319, 516, 305, 511,
	298, 502, 292, 493, 293, 482, 307, 468, 320, 458, 341, 446, 359, 433,
}

// RouteTrajectory is a smooth 43-point route used as the base of the
// multi-trajectory clustering fixture.
var RouteTrajectory = []float64{
	565, 689, 547, 682, 525, 674, 502, 668, 480, 663, 452, 660, 424, 656, 400, 652, 380, 650,
	356, 649, 335, 647, 314, 642, 297, 639, 283, 634, 272, 625, 259, 614, 245, 603, 237, 596,
	228, 589, 218, 582, 208, 574, 198, 567, 193, 561, 191, 554, 185, 551, 181, 551, 179, 549,
	178, 547, 178, 544, 177, 540, 174, 533, 170, 527, 164, 523, 154, 521, 145, 517, 131, 514,
	118, 515, 106, 515, 92, 512, 74, 507, 57, 501, 40, 495, 23, 491,
}

// RouteTrajectories returns four copies of RouteTrajectory shifted diagonally
// by -15, 0, +5 and +25, tagged with trajectory ids 1 to 4.
func RouteTrajectories() [][]l1geometry.Point {
	offsets := []float64{-15, 0, 5, 25}
	out := make([][]l1geometry.Point, len(offsets))
	for i, d := range offsets {
		out[i] = Points(i+1, Offset(RouteTrajectory, d)...)
	}
	return out
}
