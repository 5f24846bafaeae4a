package framework

// Framework identifiers.
const (
	Net             = ".NETFramework"
	NetCore         = ".NETCore"
	NetCoreApp      = ".NETCoreApp"
	NetStandard     = ".NETStandard"
	NetStandardApp  = ".NETStandardApp"
	NetPlatform     = ".NETPlatform"
	NetMicro        = ".NETMicroFramework"
	NetNano         = ".NETnanoFramework"
	Portable        = ".NETPortable"
	DotNet          = "dotnet"
	WinRT           = "WinRT"
	Windows         = "Windows"
	WindowsPhone    = "WindowsPhone"
	WindowsPhoneApp = "WindowsPhoneApp"
	Silverlight     = "Silverlight"
	UAP             = "UAP"
	MonoAndroid     = "MonoAndroid"
	MonoTouch       = "MonoTouch"
	MonoMac         = "MonoMac"
	XamarinIOS      = "Xamarin.iOS"
	XamarinMac      = "Xamarin.Mac"
	XamarinTVOS     = "Xamarin.TVOS"
	XamarinWatchOS  = "Xamarin.WatchOS"
	Dnx             = "DNX"
	DnxCore         = "DNXCore"
	AspNet          = "ASP.NET"
	AspNetCore      = "ASP.NETCore"
	Tizen           = "Tizen"
	Native          = "native"
)

// Sentinel identifiers.
const (
	AnyIdentifier         = "Any"
	AgnosticIdentifier    = "Agnostic"
	UnsupportedIdentifier = "Unsupported"
)
