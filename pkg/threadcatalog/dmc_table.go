package threadcatalog

import "strings"

// dmcTable is a small representative slice of the DMC embroidery floss
// reference catalog: id, display name, and its sRGB value. It intentionally
// includes one duplicate id (310) to exercise the first-occurrence-wins
// dedup rule documented in Load.
const dmcTable = `310,Black,0,0,0
310,Black (duplicate),1,1,1
311,Medium Navy Blue,24,70,110
321,Red,199,43,59
349,Dark Coral,109,48,47
353,Peach,250,202,177
413,Dark Pewter Gray,108,107,106
414,Dark Steel Gray,141,140,138
415,Pearl Gray,211,211,211
420,Dark Hazelnut Brown,155,106,60
498,Dark Red,167,19,43
550,Very Dark Violet,96,24,77
601,Dark Cranberry,213,84,120
606,Bright Orange-Red,232,56,34
666,Bright Red,224,30,39
700,Bright Green,0,122,52
702,Kelly Green,61,161,69
721,Medium Orange Spice,234,127,70
726,Light Topaz,255,215,121
742,Light Tangerine,255,168,33
760,Salmon,239,152,147
797,Royal Blue,14,52,131
798,Dark Royal Blue,33,75,130
800,Pale Delft Blue,199,216,232
809,Delft Blue,149,176,209
820,Very Dark Royal Blue,17,42,98
822,Light Beige Gray,227,219,206
823,Dark Navy Blue,24,42,79
890,Ultra Dark Pistachio Green,39,56,22
900,Dark Burnt Orange,215,90,14
902,Very Dark Garnet,122,30,44
915,Dark Plum,130,20,73
939,Very Dark Navy Blue,20,28,53
947,Burnt Orange,255,103,46
971,Pumpkin,243,115,3
991,Dark Aquamarine,46,99,88
996,Electric Blue,0,164,215
3078,Very Light Golden Yellow,252,246,203
3326,Light Rose,237,150,151
3371,Black Brown,38,22,19
3706,Medium Dusty Rose,237,128,127
3799,Very Dark Pewter Gray,58,57,56
3820,Dark Straw,219,170,84
3823,Ultra Pale Yellow,255,250,223
3837,Ultra Dark Lavender,88,48,93
3846,Light Bright Turquoise,43,188,209
3847,Dark Bright Turquoise,33,142,157
3852,Very Dark Straw,196,146,50
White,White,255,255,255
Ecru,Ecru,240,234,218
`

// newDMCTableReader returns a fresh reader over the bundled DMC table.
func newDMCTableReader() *strings.Reader {
	return strings.NewReader(dmcTable)
}
