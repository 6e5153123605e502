package classify

// Magic literals for the fast-text registry, byte-exact against
// testdisk's header_* tables. Exported so internal/magic can register
// them at the matching offsets without duplicating the bytes.
var (
	MagicAdr           = []byte("Opera Hotlist version 2.0")
	MagicBash          = []byte("#!/bin/bash")
	MagicCls           = []byte("VERSION 1.0 CLASS\r\nBEGIN")
	MagicCue1          = []byte("REM GENRE ")
	MagicCue2          = []byte(`FILE "`)
	MagicDC            = []byte("SC V10") // offset 4, plus buffer[0:2]=="00"
	MagicDif           = []byte("TABLE\r\n0,1\r\n")
	MagicEmka          = []byte("1\t\t\t\t\tthis file\t")
	MagicErs           = []byte("DatasetHeader Begin")
	MagicHdr           = []byte("ENVI\r\ndescription")
	MagicHTML          = []byte("<!DOCTYPE HTML")
	MagicIcs           = []byte("BEGIN:VCALENDAR")
	MagicImm           = []byte("MIME-Version:")
	MagicJad           = []byte("MIDlet-1:")
	MagicJSON          = []byte(`{"title":"","id":1,"dateAdded":`)
	MagicKsh           = []byte("#!/bin/ksh")
	MagicLy            = []byte("\n\\version \"")
	MagicLyx           = []byte("#LyX 1.")
	MagicM3u           = []byte("#EXTM3U")
	MagicMail          = []byte("From MAILER-DAEMON ")
	MagicMail2         = []byte("From ")
	MagicMdl           = []byte("Model {")
	MagicMnemosyne     = []byte("--- Mnemosyne Data Base --- Format Version 2 ---")
	MagicMsf           = []byte(`// <!-- <mdb:mork:z`)
	MagicMysql         = []byte("-- MySQL dump ")
	MagicPerlm         = []byte("package")
	MagicPhpMyAdmin    = []byte("-- phpMyAdmin SQL Dump")
	MagicPostgreSQL    = []byte("--\n-- PostgreSQL database cluster dump")
	MagicPostgreSQLWin = []byte("--\r\n-- PostgreSQL database cluster dump")
	MagicQgis          = []byte("<!DOCTYPE qgis ")
	MagicRam           = []byte("rtsp://")
	MagicReg           = []byte("REGEDIT4")
	MagicReturnPath    = []byte("Return-Path: ")
	MagicReceivedFrom  = []byte("Received: from")
	MagicRpp           = []byte("<REAPER_PROJECT ")
	MagicRtf           = []byte(`{\rtf`)
	MagicSeenezsst     = []byte("#SeeNez ")
	MagicSessionstore  = []byte(`({"windows":[{"tabs":[{"entries":[{"url":"`)
	MagicSh            = []byte("#!/bin/sh")
	MagicSlk           = []byte("ID;PSCALC3")
	MagicSmil          = []byte("<smil>")
	MagicSnzUnix       = []byte("DEFAULT\n")
	MagicSnzWin        = []byte("DEFAULT\r\n")
	MagicStl           = []byte("solid ")
	MagicStp           = []byte("ISO-10303-21;")
	MagicTtd           = []byte("FF 09 FF FF FF FF FF FF FF FF FF FF FF FF FF FF FFFF 00")
	MagicURL           = []byte("[InternetShortcut]")
	MagicWpl           = []byte(`<?wpl version="1.0"?>`)
	MagicXML           = []byte("<?xml version=")
	MagicXMLUTF8       = []byte("\xEF\xBB\xBF<?xml version=")
	MagicXmp           = []byte(`<x:xmpmeta xmlns:x="adobe:ns:meta/"`)
	MagicVbookmark     = []byte("BEGIN:VBKM")
)

// stlPaddingOffset and its all-spaces exclusion: an STL header at offset
// 0x40 of 16 spaces means the file is really a binary STL wearing an
// ASCII-looking header.
const stlPaddingOffset = 0x40

var stlPadding = []byte("                ") // 16 spaces
