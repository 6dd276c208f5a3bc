package nes

import "image/color"

// colors is the 2C02 system palette.
// Reference: https://www.nesdev.org/wiki/PPU_palettes
var colors = [64]color.RGBA{
	{0x80, 0x80, 0x80, 255}, {0x00, 0x3D, 0xA6, 255}, {0x00, 0x12, 0xB0, 255}, {0x44, 0x00, 0x96, 255},
	{0xA1, 0x00, 0x5E, 255}, {0xC7, 0x00, 0x28, 255}, {0xBA, 0x06, 0x00, 255}, {0x8C, 0x17, 0x00, 255},
	{0x5C, 0x2F, 0x00, 255}, {0x10, 0x45, 0x00, 255}, {0x05, 0x4A, 0x00, 255}, {0x00, 0x47, 0x2E, 255},
	{0x00, 0x41, 0x66, 255}, {0x00, 0x00, 0x00, 255}, {0x05, 0x05, 0x05, 255}, {0x05, 0x05, 0x05, 255},
	{0xC7, 0xC7, 0xC7, 255}, {0x00, 0x77, 0xFF, 255}, {0x21, 0x55, 0xFF, 255}, {0x82, 0x37, 0xFA, 255},
	{0xEB, 0x2F, 0xB5, 255}, {0xFF, 0x29, 0x50, 255}, {0xFF, 0x22, 0x00, 255}, {0xD6, 0x32, 0x00, 255},
	{0xC4, 0x62, 0x00, 255}, {0x35, 0x80, 0x00, 255}, {0x05, 0x8F, 0x00, 255}, {0x00, 0x8A, 0x55, 255},
	{0x00, 0x99, 0xCC, 255}, {0x21, 0x21, 0x21, 255}, {0x09, 0x09, 0x09, 255}, {0x09, 0x09, 0x09, 255},
	{0xFF, 0xFF, 0xFF, 255}, {0x0F, 0xD7, 0xFF, 255}, {0x69, 0xA2, 0xFF, 255}, {0xD4, 0x80, 0xFF, 255},
	{0xFF, 0x45, 0xF3, 255}, {0xFF, 0x61, 0x8B, 255}, {0xFF, 0x88, 0x33, 255}, {0xFF, 0x9C, 0x12, 255},
	{0xFA, 0xBC, 0x20, 255}, {0x9F, 0xE3, 0x0E, 255}, {0x2B, 0xF0, 0x35, 255}, {0x0C, 0xF0, 0xA4, 255},
	{0x05, 0xFB, 0xFF, 255}, {0x5E, 0x5E, 0x5E, 255}, {0x0D, 0x0D, 0x0D, 255}, {0x0D, 0x0D, 0x0D, 255},
	{0xFF, 0xFF, 0xFF, 255}, {0xA6, 0xFC, 0xFF, 255}, {0xB3, 0xEC, 0xFF, 255}, {0xDA, 0xAB, 0xEB, 255},
	{0xFF, 0xA8, 0xF9, 255}, {0xFF, 0xAB, 0xB3, 255}, {0xFF, 0xD2, 0xB0, 255}, {0xFF, 0xEF, 0xA6, 255},
	{0xFF, 0xF7, 0x9C, 255}, {0xD7, 0xE8, 0x95, 255}, {0xA6, 0xED, 0xAF, 255}, {0xA2, 0xF2, 0xDA, 255},
	{0x99, 0xFF, 0xFC, 255}, {0xDD, 0xDD, 0xDD, 255}, {0x11, 0x11, 0x11, 255}, {0x11, 0x11, 0x11, 255},
}
