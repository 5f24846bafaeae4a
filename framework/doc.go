// Package framework models platform descriptors ("target frameworks").
//
// A Framework names what a project targets or what an asset was built for:
// an identifier such as ".NETFramework", a four-part version, an optional
// profile and, for net5.0 and later, an optional platform with its own
// version. Three sentinels stand outside the naming scheme: Any, Agnostic and
// Unsupported.
//
// Descriptors are usually written as folder names:
//
//	net45                .NETFramework,Version=v4.5
//	net40-client         .NETFramework,Version=v4.0,Profile=Client
//	netstandard2.0       .NETStandard,Version=v2.0
//	net6.0-windows10.0   .NETCoreApp,Version=v6.0,Platform=windows,PlatformVersion=v10.0
//	portable-net45+win8  .NETPortable,Version=v0.0,Profile=Profile7
//
// Folder parsing and rendering are driven by a NameProvider, which supplies
// identifier short names, profile short names and portable profiles. The
// registry package provides the standard implementation. Folder parsing never
// fails: input that cannot be understood becomes Unsupported.
package framework
